package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rehabfolio/portfolio-api/internal/modules/model"
	"github.com/rehabfolio/portfolio-api/internal/modules/service"
	"github.com/rehabfolio/portfolio-api/internal/telemetry"
)

type ProjectHandler struct {
	instrumented
	svc service.ProjectService
}

func NewProjectHandler(s service.ProjectService, tel telemetry.Client, log *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		instrumented: instrumented{tel: tel, log: log},
		svc:          s,
	}
}

// ListPublic godoc
//
//	@Summary		List projects
//	@Description	List projects in one status, newest update first. Defaults to published; any valid status may be requested.
//	@Tags			projects
//	@Produce		json
//	@Param			status	query		string	false	"draft, published or archived"	default(published)
//	@Success		200		{array}		model.Project
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Router			/projects [get]
func (h *ProjectHandler) ListPublic(c *gin.Context) {
	op := h.begin(c, "ListPublicProjects")
	defer op.end()

	// any valid status is honoured here, drafts included; the site only asks for the default
	items, err := h.svc.List(c.Request.Context(), c.DefaultQuery("status", model.StatusPublished))
	if err != nil {
		op.fail(err)
		return
	}
	op.count("Count", len(items))
	c.JSON(http.StatusOK, items)
}

// GetBySlug godoc
//
//	@Summary		Get published project
//	@Tags			projects
//	@Produce		json
//	@Param			slug	path		string	true	"Project slug"
//	@Success		200		{object}	model.Project
//	@Failure		404		{object}	serializer.ErrorResponse
//	@Router			/projects/{slug} [get]
func (h *ProjectHandler) GetBySlug(c *gin.Context) {
	op := h.begin(c, "GetProjectBySlug")
	defer op.end()

	p, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		op.fail(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListManaged godoc
//
//	@Summary		List all projects
//	@Description	List projects in any status unless status is given.
//	@Tags			manage
//	@Produce		json
//	@Param			status	query		string	false	"draft, published or archived"
//	@Security		ClientPrincipal
//	@Success		200		{array}		model.Project
//	@Failure		401		{object}	serializer.ErrorResponse
//	@Failure		403		{object}	serializer.ErrorResponse
//	@Router			/manage/projects [get]
func (h *ProjectHandler) ListManaged(c *gin.Context) {
	op := h.begin(c, "ListManagedProjects")
	defer op.end()

	items, err := h.svc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		op.fail(err)
		return
	}
	op.count("Count", len(items))
	c.JSON(http.StatusOK, items)
}

// GetByID godoc
//
//	@Summary		Get project
//	@Tags			manage
//	@Produce		json
//	@Param			id	path	string	true	"Project ID"
//	@Security		ClientPrincipal
//	@Success		200	{object}	model.Project
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/manage/projects/{id} [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	op := h.begin(c, "GetProjectByID")
	defer op.end()

	p, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		op.fail(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Create godoc
//
//	@Summary		Create project
//	@Tags			manage
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	service.ProjectInput	true	"Project fields"
//	@Security		ClientPrincipal
//	@Success		201	{object}	model.Project
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Failure		409	{object}	serializer.ErrorResponse
//	@Router			/manage/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	op := h.begin(c, "CreateProject")
	defer op.end()

	var in service.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		op.badBody(err)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		op.fail(err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Update godoc
//
//	@Summary		Update project
//	@Description	Replace every non-image field. Images are managed through the image endpoints.
//	@Tags			manage
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string					true	"Project ID"
//	@Param			payload	body	service.ProjectInput	true	"Project fields"
//	@Security		ClientPrincipal
//	@Success		200	{object}	model.Project
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Failure		409	{object}	serializer.ErrorResponse
//	@Router			/manage/projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	op := h.begin(c, "UpdateProject")
	defer op.end()

	var in service.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		op.badBody(err)
		return
	}

	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		op.fail(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete godoc
//
//	@Summary		Delete project
//	@Tags			manage
//	@Param			id	path	string	true	"Project ID"
//	@Security		ClientPrincipal
//	@Success		204
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/manage/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	op := h.begin(c, "DeleteProject")
	defer op.end()

	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		op.fail(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Dashboard godoc
//
//	@Summary		Dashboard
//	@Description	Project counts and the five most recently updated projects.
//	@Tags			manage
//	@Produce		json
//	@Security		ClientPrincipal
//	@Success		200	{object}	service.Dashboard
//	@Router			/dashboard [get]
func (h *ProjectHandler) Dashboard(c *gin.Context) {
	op := h.begin(c, "GetDashboard")
	defer op.end()

	d, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		op.fail(err)
		return
	}
	op.count("TotalProjects", int(d.Stats.Total))
	c.JSON(http.StatusOK, d)
}

// AttachImage godoc
//
//	@Summary		Attach image
//	@Description	Link an uploaded image to the before or after gallery.
//	@Tags			manage
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string						true	"Project ID"
//	@Param			payload	body	service.AttachImageInput	true	"Image"
//	@Security		ClientPrincipal
//	@Success		201	{object}	model.ProjectImage
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/manage/projects/{id}/images [post]
func (h *ProjectHandler) AttachImage(c *gin.Context) {
	op := h.begin(c, "AttachProjectImage")
	defer op.end()

	var in service.AttachImageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		op.badBody(err)
		return
	}

	img, err := h.svc.AttachImage(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		op.fail(err)
		return
	}
	c.JSON(http.StatusCreated, img)
}

// DetachImage godoc
//
//	@Summary		Detach image
//	@Tags			manage
//	@Param			id		path	string	true	"Project ID"
//	@Param			imageId	path	string	true	"Image ID"
//	@Security		ClientPrincipal
//	@Success		204
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/manage/projects/{id}/images/{imageId} [delete]
func (h *ProjectHandler) DetachImage(c *gin.Context) {
	op := h.begin(c, "DetachProjectImage")
	defer op.end()

	if err := h.svc.DetachImage(c.Request.Context(), c.Param("id"), c.Param("imageId")); err != nil {
		op.fail(err)
		return
	}
	c.Status(http.StatusNoContent)
}
