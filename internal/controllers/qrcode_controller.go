package controllers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

type QRCodeController struct{}

func NewQRCodeController() *QRCodeController {
	return &QRCodeController{}
}

// ShareRecipe handles GET /api/v1/recipes/qr?url= - generates a QR code
// for a recipe's source link so it can be shared from the recipe modal
func (qc *QRCodeController) ShareRecipe(c *gin.Context) {
	target := c.Query("url")
	if target == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "url query parameter is required",
		})
		return
	}

	parsed, err := url.Parse(target)
	if err != nil || parsed.Hostname() == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "url must be a valid absolute URL",
		})
		return
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "url must use http or https",
		})
		return
	}

	// 256x256 pixels, medium error recovery
	qrCode, err := qrcode.New(target, qrcode.Medium)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate QR code",
		})
		return
	}

	pngData, err := qrCode.PNG(256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate QR code image",
		})
		return
	}

	c.Header("Content-Disposition", "inline; filename=recipe-qr.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
