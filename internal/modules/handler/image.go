package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rehabfolio/portfolio-api/internal/modules/service"
	"github.com/rehabfolio/portfolio-api/internal/telemetry"
)

type ImageHandler struct {
	instrumented
	svc service.ImageService
}

func NewImageHandler(s service.ImageService, tel telemetry.Client, log *zap.Logger) *ImageHandler {
	return &ImageHandler{
		instrumented: instrumented{tel: tel, log: log},
		svc:          s,
	}
}

type UploadTokenReq struct {
	FileName    string `json:"fileName" binding:"required" example:"kitchen.png"`
	ContentType string `json:"contentType" binding:"required" example:"image/png"`
}

// IssueUploadToken godoc
//
//	@Summary		Issue upload URL
//	@Description	Returns a pre-signed URL that allows a single PUT of one new image object, and the plain URL to reference it afterwards.
//	@Tags			manage
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.UploadTokenReq	true	"File to upload"
//	@Security		ClientPrincipal
//	@Success		200	{object}	service.UploadToken
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Router			/manage/images/sas-token [post]
func (h *ImageHandler) IssueUploadToken(c *gin.Context) {
	op := h.begin(c, "IssueUploadToken")
	defer op.end()

	var req UploadTokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		op.badBody(err)
		return
	}

	tok, err := h.svc.IssueUploadToken(c.Request.Context(), req.FileName, req.ContentType)
	if err != nil {
		op.fail(err)
		return
	}
	c.JSON(http.StatusOK, tok)
}
