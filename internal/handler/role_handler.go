package handler

import (
	"errors"
	"net/http"

	"backend/internal/service"
	"backend/pkg/apperr"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	roleService service.RoleService
}

func NewRoleHandler(roleService service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

func (h *RoleHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	roles := router.Group("/api/roles")
	roles.Use(auth)
	{
		roles.GET("", h.ListRoles)
		roles.GET("/:id", h.GetRole)
		roles.POST("", h.CreateRole)
		roles.PUT("/:id", h.UpdateRole)
		roles.DELETE("/:id", h.DeleteRole)
		roles.GET("/:id/permissions", h.ListRolePermissions)
	}

	assignments := router.Group("/api/assignments")
	assignments.Use(auth)
	{
		assignments.POST("", h.AssignPermission)
	}
}

// ListRoles godoc
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  response.Response{data=[]service.RoleResponse}
// @Failure      401  {object}  response.Response
// @Router       /roles [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, roles))
}

// GetRole godoc
// @Summary      Get a role
// @Description  Returns a role with its assigned permissions
// @Tags         roles
// @Produce      json
// @Security     SessionAuth
// @Param        id  path  int  true  "Role ID"
// @Success      200  {object}  response.Response{data=service.RoleResponse}
// @Failure      404  {object}  response.Response
// @Router       /roles/{id} [get]
func (h *RoleHandler) GetRole(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	role, err := h.roleService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, MessageNotFound))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, role))
}

// CreateRole godoc
// @Summary      Create a role
// @Description  Creates a new role with a unique name
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        payload  body      service.CreateRoleRequest  true  "Create Role Payload"
// @Success      201      {object}  response.Response{data=service.RoleResponse}
// @Failure      400      {object}  response.Response
// @Router       /roles [post]
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req service.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, MessageInvalidPayload))
		return
	}

	role, err := h.roleService.Create(c.Request.Context(), actorID(c), req)
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

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, role))
}

// UpdateRole godoc
// @Summary      Update a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        id       path      int                        true  "Role ID"
// @Param        payload  body      service.UpdateRoleRequest  true  "Update Role Payload"
// @Success      200      {object}  response.Response{data=service.RoleResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /roles/{id} [put]
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req service.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, MessageInvalidPayload))
		return
	}

	role, err := h.roleService.Update(c.Request.Context(), actorID(c), id, req)
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

	c.JSON(http.StatusOK, response.Success(http.StatusOK, role))
}

// DeleteRole godoc
// @Summary      Delete a role
// @Description  Removes a role and its permission assignments. Fails when accounts still reference the role.
// @Tags         roles
// @Produce      json
// @Security     SessionAuth
// @Param        id  path  int  true  "Role ID"
// @Success      204  "No Content"
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /roles/{id} [delete]
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.roleService.Delete(c.Request.Context(), actorID(c), id); err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, MessageNotFound))
		case errors.Is(err, apperr.ErrConflict):
			c.JSON(http.StatusConflict, response.Error(http.StatusConflict, MessageRoleReferenced))
		default:
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ListRolePermissions godoc
// @Summary      List permissions of a role
// @Tags         roles
// @Produce      json
// @Security     SessionAuth
// @Param        id  path  int  true  "Role ID"
// @Success      200  {object}  response.Response{data=[]service.PermissionResponse}
// @Failure      404  {object}  response.Response
// @Router       /roles/{id}/permissions [get]
func (h *RoleHandler) ListRolePermissions(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	permissions, err := h.roleService.ListRolePermissions(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, MessageNotFound))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, permissions))
}

// AssignPermission godoc
// @Summary      Assign a permission to a role
// @Description  Creates a role-permission assignment. Duplicate assignments are rejected.
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        payload  body      service.AssignPermissionRequest  true  "Assignment Payload"
// @Success      201      {object}  response.Response{data=service.AssignmentResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /assignments [post]
func (h *RoleHandler) AssignPermission(c *gin.Context) {
	var req service.AssignPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, MessageInvalidPayload))
		return
	}

	assignment, err := h.roleService.AssignPermission(c.Request.Context(), actorID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrValidation):
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, MessageAssignmentRequired))
		case errors.Is(err, apperr.ErrNotFound):
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, MessageNotFound))
		case errors.Is(err, apperr.ErrConflict):
			c.JSON(http.StatusConflict, response.Error(http.StatusConflict, MessageAlreadyAssigned))
		default:
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, assignment))
}
