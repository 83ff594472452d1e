package handler

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meetiosdev/topics-api/shared/api"
	"github.com/meetiosdev/topics-api/shared/errors"
	"github.com/meetiosdev/topics-api/shared/utils"
	"github.com/meetiosdev/topics-api/shared/validation"
)

const topicIdParam = "topicId"

func (h *Handler) ListTopics(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, limit, err := validation.ParsePagination(query.Get("page"), query.Get("limit"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	topics, err := h.topic.List(r.Context(), page, limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteData(w, api.NewTopicListResponse(topics))
}

func (h *Handler) GetTopic(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, topicIdParam)

	topic, err := h.topic.Get(r.Context(), id)
	if err != nil {
		writeTopicError(w, id, err)
		return
	}

	utils.WriteData(w, api.NewTopicResponse(*topic))
}

func (h *Handler) GetTopicPosts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, topicIdParam)

	topic, err := h.topic.GetWithPosts(r.Context(), id)
	if err != nil {
		writeTopicError(w, id, err)
		return
	}

	utils.WriteData(w, api.NewTopicPostsResponse(topic))
}

func writeTopicError(w http.ResponseWriter, id string, err error) {
	if stderrors.Is(err, errors.ErrNotFound) {
		utils.WriteJSON(w, http.StatusNotFound, api.Response{
			Error:   "Topic not found",
			Message: fmt.Sprintf("Topic with ID %s does not exist", id),
		})
		return
	}
	utils.WriteErrorAndStatusCode(w, err)
}
