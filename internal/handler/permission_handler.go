package handler

import (
	"errors"
	"net/http"
	"strconv"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/apperr"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type PermissionHandler struct {
	permissionService service.PermissionService
}

func NewPermissionHandler(permissionService service.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

func (h *PermissionHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	permissions := router.Group("/api/permissions")
	permissions.Use(auth)
	{
		permissions.GET("", h.ListPermissions)
		permissions.POST("", h.CreatePermission)
		permissions.PUT("/:id", h.UpdatePermission)
		permissions.DELETE("/:id", h.DeletePermission)
	}
}

// parseID reads a numeric path parameter. A non-numeric id behaves like a
// missing record.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, MessageNotFound))
		return 0, false
	}
	return uint(id), true
}

func actorID(c *gin.Context) string {
	return c.GetString(middleware.ContextAccountID)
}

// ListPermissions godoc
// @Summary      List permissions
// @Description  Returns all permissions in creation order
// @Tags         permissions
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  response.Response{data=[]service.PermissionResponse}
// @Failure      401  {object}  response.Response
// @Router       /permissions [get]
func (h *PermissionHandler) ListPermissions(c *gin.Context) {
	permissions, err := h.permissionService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, permissions))
}

// CreatePermission godoc
// @Summary      Create a permission
// @Description  Creates a new permission with a unique name
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        payload  body      service.CreatePermissionRequest  true  "Create Permission Payload"
// @Success      201      {object}  response.Response{data=service.PermissionResponse}
// @Failure      400      {object}  response.Response
// @Router       /permissions [post]
func (h *PermissionHandler) CreatePermission(c *gin.Context) {
	var req service.CreatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, MessageInvalidPayload))
		return
	}

	permission, err := h.permissionService.Create(c.Request.Context(), actorID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrValidation):
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, MessageRequired))
		case errors.Is(err, apperr.ErrConflict):
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, MessageExists))
		default:
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, permission))
}

// UpdatePermission godoc
// @Summary      Update a permission
// @Description  Renames a permission, updates its description, or toggles its status
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        id       path      int                              true  "Permission ID"
// @Param        payload  body      service.UpdatePermissionRequest  true  "Update Permission Payload"
// @Success      200      {object}  response.Response{data=service.PermissionResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /permissions/{id} [put]
func (h *PermissionHandler) UpdatePermission(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req service.UpdatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, MessageInvalidPayload))
		return
	}

	permission, err := h.permissionService.Update(c.Request.Context(), actorID(c), id, req)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrValidation):
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, MessageRequired))
		case errors.Is(err, apperr.ErrNotFound):
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, MessageNotFound))
		case errors.Is(err, apperr.ErrConflict):
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, MessageExists))
		default:
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, permission))
}

// DeletePermission godoc
// @Summary      Delete a permission
// @Description  Removes a permission and its role assignments
// @Tags         permissions
// @Produce      json
// @Security     SessionAuth
// @Param        id  path  int  true  "Permission ID"
// @Success      204  "No Content"
// @Failure      404  {object}  response.Response
// @Router       /permissions/{id} [delete]
func (h *PermissionHandler) DeletePermission(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.permissionService.Delete(c.Request.Context(), actorID(c), id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, MessageNotFound))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.Status(http.StatusNoContent)
}
