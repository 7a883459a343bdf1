package controllers

import (
	"errors"
	"io"
	"net/http"

	"blogd/internal/models"
	"blogd/internal/providers"
	"blogd/internal/schema"
	"blogd/internal/services"
)

// AdminController serves the authenticated management API. Every successful
// write purges the public response cache.
type AdminController struct {
	logger  providers.Logger
	service services.BlogServiceInterface
	uploads services.UploadServiceInterface
	cache   providers.CacheProviderInterface
}

type statusRequest struct {
	Status models.PostStatus `json:"status"`
}

type approvalRequest struct {
	Approved bool `json:"approved"`
}

func NewAdminController(logger providers.Logger, service services.BlogServiceInterface, uploads services.UploadServiceInterface, cache providers.CacheProviderInterface) *AdminController {
	return &AdminController{
		logger:  logger,
		service: service,
		uploads: uploads,
		cache:   cache,
	}
}

func (adm *AdminController) written(w http.ResponseWriter, status int, v any) {
	adm.cache.Purge()
	writeJSON(w, status, v)
}

func (adm *AdminController) Verify(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": true})
}

func (adm *AdminController) ListPosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, adm.service.ListPosts())
}

func (adm *AdminController) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := adm.service.GetPost(r.PathValue("id"))
	if err != nil {
		fail(w, adm.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (adm *AdminController) CreatePost(w http.ResponseWriter, r *http.Request) {
	var input models.PostInput
	if !decodeBody(w, r, &input) {
		return
	}
	post, err := adm.service.CreatePost(input)
	if err != nil {
		fail(w, adm.logger, err)
		return
	}
	adm.written(w, http.StatusCreated, post)
}

func (adm *AdminController) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var input models.PostInput
	if !decodeBody(w, r, &input) {
		return
	}
	post, err := adm.service.UpdatePost(r.PathValue("id"), input)
	if err != nil {
		fail(w, adm.logger, err)
		return
	}
	adm.written(w, http.StatusOK, post)
}

func (adm *AdminController) SetPostStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	post, err := adm.service.SetPostStatus(r.PathValue("id"), req.Status)
	if err != nil {
		fail(w, adm.logger, err)
		return
	}
	adm.written(w, http.StatusOK, post)
}

func (adm *AdminController) DeletePost(w http.ResponseWriter, r *http.Request) {
	res, err := adm.service.DeletePost(r.PathValue("id"))
	if err != nil {
		fail(w, adm.logger, err)
		return
	}
	adm.written(w, http.StatusOK, res)
}

func (adm *AdminController) ListComments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, adm.service.ListComments())
}

func (adm *AdminController) ModerateComment(w http.ResponseWriter, r *http.Request) {
	var req approvalRequest
	if !decodeBody(w, r, &req) {
		return
	}
	comment, err := adm.service.ApproveComment(r.PathValue("id"), req.Approved)
	if err != nil {
		fail(w, adm.logger, err)
		return
	}
	adm.written(w, http.StatusOK, comment)
}

func (adm *AdminController) DeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := adm.service.DeleteComment(r.PathValue("id")); err != nil {
		fail(w, adm.logger, err)
		return
	}
	adm.written(w, http.StatusOK, map[string]bool{"success": true})
}

func (adm *AdminController) CleanupComments(w http.ResponseWriter, r *http.Request) {
	res, err := adm.service.CleanupOrphanedComments()
	if err != nil {
		fail(w, adm.logger, err)
		return
	}
	adm.written(w, http.StatusOK, res)
}

func (adm *AdminController) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, adm.service.GetSettings())
}

func (adm *AdminController) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.SiteSettings
	if !decodeBody(w, r, &settings) {
		return
	}
	saved, err := adm.service.UpdateSettings(settings)
	if err != nil {
		fail(w, adm.logger, err)
		return
	}
	adm.written(w, http.StatusOK, saved)
}

func (adm *AdminController) Analytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, adm.service.AnalyticsSummary())
}

func (adm *AdminController) Integrity(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, adm.service.IntegrityCheck())
}

// Upload accepts one image in the multipart field "image".
func (adm *AdminController) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, schema.MaxUploadSize+maxRequestBodySize)
	file, header, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request")
		return
	}
	upload, err := adm.uploads.SaveImage(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		fail(w, adm.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, upload)
}
