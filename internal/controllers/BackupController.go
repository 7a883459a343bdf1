package controllers

import (
	"net/http"
	"path/filepath"

	"blogd/internal/providers"
	"blogd/internal/services"
)

type BackupController struct {
	logger  providers.Logger
	service services.BlogServiceInterface
	cache   providers.CacheProviderInterface
}

type restoreRequest struct {
	Name string `json:"name"`
}

type fileResponse struct {
	Name string `json:"name"`
}

func NewBackupController(logger providers.Logger, service services.BlogServiceInterface, cache providers.CacheProviderInterface) *BackupController {
	return &BackupController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func (bc *BackupController) List(w http.ResponseWriter, r *http.Request) {
	backups, err := bc.service.ListBackups()
	if err != nil {
		fail(w, bc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, backups)
}

// Create responds with the file name only; server paths stay private.
func (bc *BackupController) Create(w http.ResponseWriter, r *http.Request) {
	path, err := bc.service.CreateBackup(r.Context())
	if err != nil {
		fail(w, bc.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, fileResponse{Name: filepath.Base(path)})
}

func (bc *BackupController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := bc.service.DeleteBackup(r.PathValue("name")); err != nil {
		fail(w, bc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (bc *BackupController) Restore(w http.ResponseWriter, r *http.Request) {
	var req restoreRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := bc.service.RestoreFromBackup(r.Context(), req.Name); err != nil {
		fail(w, bc.logger, err)
		return
	}
	bc.cache.Purge()
	bc.logger.Infof(providers.TypeAPI, "data restored from %s", req.Name)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (bc *BackupController) Export(w http.ResponseWriter, r *http.Request) {
	path, err := bc.service.ExportData(r.Context())
	if err != nil {
		fail(w, bc.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, fileResponse{Name: filepath.Base(path)})
}
