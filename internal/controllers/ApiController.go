package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"

	"blogd/internal/models"
	"blogd/internal/providers"
	"blogd/internal/services"
)

// ApiController serves the public blog API. Read endpoints go through the
// response cache, which admin writes purge.
type ApiController struct {
	logger  providers.Logger
	service services.BlogServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.BlogServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		fail(w, ac.logger, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) ListPosts(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "posts", func() (any, error) {
		return ac.service.ListPublishedPosts(), nil
	})
}

func (ac *ApiController) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	ac.serveFromCacheOrCompute(w, "post:"+slug, func() (any, error) {
		post, err := ac.service.GetPublishedPost(slug)
		if err != nil {
			return nil, err
		}
		return post, nil
	})
}

// RecordView is not cached and does not purge: view counts in cached
// listings lag by at most the cache TTL.
func (ac *ApiController) RecordView(w http.ResponseWriter, r *http.Request) {
	if _, err := ac.service.RecordPostView(r.PathValue("id"), visitorKey(r)); err != nil {
		fail(w, ac.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (ac *ApiController) ListComments(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("postId")
	ac.serveFromCacheOrCompute(w, "comments:"+postID, func() (any, error) {
		return ac.service.ListApprovedComments(postID), nil
	})
}

func (ac *ApiController) CreateComment(w http.ResponseWriter, r *http.Request) {
	var input models.CommentInput
	if !decodeBody(w, r, &input) {
		return
	}
	comment, err := ac.service.CreateComment(input)
	if err != nil {
		fail(w, ac.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (ac *ApiController) GetSettings(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "settings", func() (any, error) {
		return ac.service.GetSettings(), nil
	})
}
