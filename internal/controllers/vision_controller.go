package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fridgely-be/internal/errs"
	"fridgely-be/internal/models"
	"fridgely-be/internal/service"
)

type VisionController struct {
	visionService service.VisionService
}

func NewVisionController(visionService service.VisionService) *VisionController {
	return &VisionController{
		visionService: visionService,
	}
}

// AnalyzeImage handles POST /api/v1/items/analyze - extract inventory
// items from a fridge photo. Analysis failures are surfaced here (the
// user is waiting on their photo), unlike the recipe path which degrades
// silently.
func (vc *VisionController) AnalyzeImage(c *gin.Context) {
	var req models.AnalyzeImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	result, err := vc.visionService.AnalyzeImage(&req)
	if err != nil {
		switch {
		case errs.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errs.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errs.IsUpstream(err):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Unable to analyze the image. Please try again.",
			})
		default:
			respondStoreError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
