// Package model defines the database models for the board.
//
// This package contains GORM models that map to the board's PostgreSQL
// schema.
//
// # Core Models
//
//   - Account: registered identities, keyed by login name
//   - Content: bulletin board posts with ownership and timestamps
//   - Attachment: opaque file payloads attached to a post
//   - Session: server-side login sessions referenced by cookie token
//
// # Database Schema
//
//   - accounts: login name, bcrypt password hash, role
//   - contents: subject, text, owner, created/modified timestamps
//   - content_attachments: filename plus raw bytes, cascade-deleted
//   - sessions: opaque token, owning account, expiry
package model
