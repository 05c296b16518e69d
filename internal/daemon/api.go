package daemon

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crmdash/internal/logging"
	"crmdash/internal/store"
	"crmdash/internal/types"
)

type API struct {
	Version       string
	Notifications *NotificationService
	Records       *RecordService
	Logger        logging.Logger
}

func NewAPI(version string, repo store.Repository, logger logging.Logger) *API {
	if logger == nil {
		logger = logging.Nop()
	}
	var notifications *NotificationService
	if repo != nil {
		notifications = NewNotificationService(repo.Notifications(), logger)
	}
	return &API{
		Version:       version,
		Notifications: notifications,
		Records:       NewRecordService(repo, notifications),
		Logger:        logger,
	}
}

func (a *API) Health(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{
		"ok":      true,
		"version": a.Version,
	})
}

func (a *API) GlobalNotifications(c *gin.Context) {
	a.listNotifications(c, "")
}

func (a *API) UserNotifications(c *gin.Context) {
	a.listNotifications(c, c.Param("userId"))
}

func (a *API) listNotifications(c *gin.Context, userID string) {
	items, err := a.Notifications.List(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, items)
}

func (a *API) CreateNotification(c *gin.Context) {
	var req types.CreateNotificationRequest
	if err := bindJSON(c, &req); err != nil {
		writeServiceError(c, err)
		return
	}
	item, err := a.Notifications.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, item)
}

func (a *API) MarkNotificationRead(c *gin.Context) {
	item, err := a.Notifications.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, item)
}

type recordHandlers struct {
	resource types.Resource
	records  *RecordService
}

func (h recordHandlers) list(c *gin.Context) {
	records, err := h.records.List(c.Request.Context(), h.resource)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, records)
}

func (h recordHandlers) get(c *gin.Context) {
	record, err := h.records.Get(c.Request.Context(), h.resource, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, record)
}

func (h recordHandlers) create(c *gin.Context) {
	var record store.Record
	if err := bindJSON(c, &record); err != nil {
		writeServiceError(c, err)
		return
	}
	created, err := h.records.Create(c.Request.Context(), h.resource, record)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, created)
}

func (h recordHandlers) update(c *gin.Context) {
	var patch store.Record
	if err := bindJSON(c, &patch); err != nil {
		writeServiceError(c, err)
		return
	}
	updated, err := h.records.Update(c.Request.Context(), h.resource, c.Param("id"), patch)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, updated)
}

func (h recordHandlers) delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.records.Delete(c.Request.Context(), h.resource, id); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"ok": true, "_id": id})
}
