package endpoints

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/kimyoungq/webboard/pkg/board"
	"github.com/kimyoungq/webboard/pkg/identity"
	"github.com/kimyoungq/webboard/pkg/model"
	"github.com/kimyoungq/webboard/pkg/server"
	"github.com/kimyoungq/webboard/pkg/server/store"
)

type listingData struct {
	Identity     *identity.Identity
	CSRFToken    string
	Page         *store.ContentPage
	PrevPage     int
	NextPage     int
	PageDisplay  int
	TotalDisplay int
}

type readData struct {
	Content   *model.Content
	CanMutate bool
}

type postFormData struct {
	Content   *model.Content
	CSRFToken string
	Subject   string
	Text      string
	Error     string
}

// RegisterListingEndpoint registers the paginated front page
func RegisterListingEndpoint(srv *server.Server) {
	srv.Router.HandleFunc("/", handleListing(srv)).Methods("GET")
}

// RegisterPostEndpoints registers the content read/write/modify/delete
// endpoints and attachment downloads
func RegisterPostEndpoints(srv *server.Server) {
	r := srv.Router
	r.HandleFunc("/post/read", handleRead(srv)).Methods("GET")
	r.HandleFunc("/post/write", handleWriteForm(srv)).Methods("GET")
	r.HandleFunc("/post/write", handleWrite(srv)).Methods("POST")
	r.HandleFunc("/post/modify", handleModifyForm(srv)).Methods("GET")
	r.HandleFunc("/post/modify", handleModify(srv)).Methods("POST")
	r.HandleFunc("/post/delete", handleDelete(srv)).Methods("GET")
	r.HandleFunc("/post/attachment", handleAttachment(srv)).Methods("GET")
}

func handleListing(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := 1
		if raw := r.URL.Query().Get("page"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				page = parsed
			}
		}

		result, err := srv.Lifecycle.List(r.Context(), page, srv.Config.ListingPageSize)
		if err != nil {
			renderError(srv, w, http.StatusInternalServerError, "Failed to load the listing")
			return
		}

		totalDisplay := result.TotalPages
		if totalDisplay < 1 {
			totalDisplay = 1
		}

		renderPage(srv, w, "index.html", listingData{
			Identity:     requester(r),
			CSRFToken:    csrfToken(r),
			Page:         result,
			PrevPage:     result.Page - 1,
			NextPage:     result.Page + 1,
			PageDisplay:  result.Page,
			TotalDisplay: totalDisplay,
		})
	}
}

func handleRead(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := contentID(r)
		if !ok {
			renderError(srv, w, http.StatusNotFound, "No such post")
			return
		}

		content, err := srv.Lifecycle.Read(r.Context(), requester(r), id)
		if err != nil {
			renderError(srv, w, http.StatusNotFound, "No such post")
			return
		}

		renderPage(srv, w, "read.html", readData{
			Content:   content,
			CanMutate: srv.Lifecycle.CanMutate(requester(r), content),
		})
	}
}

func handleWriteForm(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(srv, w, "write.html", postFormData{CSRFToken: csrfToken(r)})
	}
}

func handleWrite(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attachments, formErr := readAttachments(srv, r)
		subject := r.PostFormValue("subject")
		text := r.PostFormValue("text")

		if formErr == "" {
			id, err := srv.Lifecycle.Create(r.Context(), requester(r), subject, text, attachments)
			switch {
			case err == nil:
				http.Redirect(w, r, fmt.Sprintf("/post/read?content_id=%d", id), http.StatusSeeOther)
				return
			case errors.Is(err, board.ErrValidation):
				formErr = err.Error()
			default:
				renderError(srv, w, http.StatusInternalServerError, "Failed to save the post")
				return
			}
		}

		renderPage(srv, w, "write.html", postFormData{
			CSRFToken: csrfToken(r),
			Subject:   subject,
			Text:      text,
			Error:     formErr,
		})
	}
}

func handleModifyForm(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := contentID(r)
		if !ok {
			renderError(srv, w, http.StatusNotFound, "No such post")
			return
		}

		content, err := srv.Lifecycle.Read(r.Context(), requester(r), id)
		if err != nil {
			renderError(srv, w, http.StatusNotFound, "No such post")
			return
		}
		if !srv.Lifecycle.CanMutate(requester(r), content) {
			renderError(srv, w, http.StatusForbidden, "You can only edit your own posts")
			return
		}

		renderPage(srv, w, "modify.html", postFormData{
			Content:   content,
			CSRFToken: csrfToken(r),
			Subject:   content.Subject,
			Text:      content.Text,
		})
	}
}

func handleModify(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := contentID(r)
		if !ok {
			renderError(srv, w, http.StatusNotFound, "No such post")
			return
		}

		subject := r.PostFormValue("subject")
		text := r.PostFormValue("text")

		err := srv.Lifecycle.Update(r.Context(), requester(r), id, subject, text)
		switch {
		case err == nil:
			http.Redirect(w, r, fmt.Sprintf("/post/read?content_id=%d", id), http.StatusSeeOther)
		case errors.Is(err, board.ErrValidation):
			renderPage(srv, w, "modify.html", postFormData{
				Content:   &model.Content{ID: id},
				CSRFToken: csrfToken(r),
				Subject:   subject,
				Text:      text,
				Error:     err.Error(),
			})
		case errors.Is(err, board.ErrForbidden):
			renderError(srv, w, http.StatusForbidden, "You can only edit your own posts")
		case errors.Is(err, store.ErrContentNotFound):
			renderError(srv, w, http.StatusNotFound, "No such post")
		default:
			renderError(srv, w, http.StatusInternalServerError, "Failed to save the post")
		}
	}
}

func handleDelete(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := contentID(r)
		if !ok {
			renderError(srv, w, http.StatusNotFound, "No such post")
			return
		}

		err := srv.Lifecycle.Delete(r.Context(), requester(r), id)
		switch {
		case err == nil:
			http.Redirect(w, r, "/", http.StatusSeeOther)
		case errors.Is(err, board.ErrForbidden):
			renderError(srv, w, http.StatusForbidden, "You can only delete your own posts")
		case errors.Is(err, store.ErrContentNotFound):
			renderError(srv, w, http.StatusNotFound, "No such post")
		default:
			renderError(srv, w, http.StatusInternalServerError, "Failed to delete the post")
		}
	}
}

func handleAttachment(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attachment, err := srv.Lifecycle.Attachment(r.Context(), r.URL.Query().Get("attachment_id"))
		if err != nil {
			renderError(srv, w, http.StatusNotFound, "No such attachment")
			return
		}

		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.Filename))
		w.Header().Set("Content-Length", strconv.Itoa(len(attachment.Data)))
		_, _ = w.Write(attachment.Data)
	}
}

// readAttachments collects uploaded files from the multipart form.
// Returns a user-facing error message when an upload exceeds the
// configured size cap.
func readAttachments(srv *server.Server, r *http.Request) ([]board.Attachment, string) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		return nil, ""
	}
	if r.MultipartForm == nil {
		return nil, ""
	}

	var attachments []board.Attachment
	for _, header := range r.MultipartForm.File["files"] {
		if header.Filename == "" || header.Size == 0 {
			continue
		}
		if header.Size > srv.Config.MaxAttachmentBytes {
			return nil, fmt.Sprintf("attachment %s exceeds the size limit", header.Filename)
		}

		file, err := header.Open()
		if err != nil {
			return nil, "failed to read an uploaded file"
		}
		data, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			return nil, "failed to read an uploaded file"
		}

		attachments = append(attachments, board.Attachment{
			Filename: header.Filename,
			Data:     data,
		})
	}
	return attachments, ""
}
