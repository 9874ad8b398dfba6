// Package main implements boardctl, the CLI for the community bulletin
// board server.
//
// # Quick Start
//
// The server is run via the boardctl CLI:
//
//	# Generate a key for signing anti-forgery tokens
//	boardctl secret-key generate > secret_key
//	export BOARD_SECRET_KEY=$(cat secret_key)
//
//	# Run database migrations
//	boardctl db migrate
//
//	# Create an administrator
//	boardctl account create admin --password changeme --role admin
//
//	# Start the server
//	boardctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - BOARD_SECRET_KEY: Base64-encoded key for signing anti-forgery tokens
//   - BOARD_LOG_LEVEL: Log level (debug enables SQL logging)
//   - PORT: Server port (default: 8080)
package main
