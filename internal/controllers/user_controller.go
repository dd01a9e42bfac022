package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fridgely-be/internal/errs"
	"fridgely-be/internal/models"
	"fridgely-be/internal/service"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// EnsureUser handles POST /user - create the user record on first
// sign-in, or return the existing one for the email
func (uc *UserController) EnsureUser(c *gin.Context) {
	var req models.EnsureUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	result, err := uc.userService.EnsureUser(&req)
	if err != nil {
		if errs.IsValidation(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"message": err.Error(),
			})
			return
		}
		respondStoreError(c, err)
		return
	}

	if !result.Created {
		c.JSON(http.StatusOK, gin.H{
			"success":  false,
			"message":  "Email already exists",
			"userData": result.User,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User successfully created",
		"data":    result.User,
	})
}

// AppendItems handles POST /updateuser - concatenate items to the user's list
func (uc *UserController) AppendItems(c *gin.Context) {
	var req models.AppendItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	user, err := uc.userService.AppendItems(req.Email, req.Items)
	if err != nil {
		switch {
		case errs.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": err.Error(),
			})
		case errs.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "User not found",
			})
		default:
			respondStoreError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Items added successfully",
		"data":    user,
	})
}

// UpdateItem handles POST /updateItem - rename/requantify one item by id
func (uc *UserController) UpdateItem(c *gin.Context) {
	var req models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input."})
		return
	}

	err := uc.userService.UpdateItem(req.Email, req.ItemID, req.Name, req.Quantity)
	if err != nil {
		switch {
		case errs.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input."})
		case errs.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "User or item not found",
			})
		default:
			respondStoreError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item is updated",
	})
}

// DeleteItem handles POST /deleteItem - remove exactly one item by id
func (uc *UserController) DeleteItem(c *gin.Context) {
	var req models.DeleteItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input."})
		return
	}

	err := uc.userService.DeleteItem(req.Email, req.ItemID)
	if err != nil {
		switch {
		case errs.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input."})
		case errs.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"message": notFoundMessage(err)})
		default:
			respondStoreError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully."})
}

// notFoundMessage distinguishes a missing user from a missing item
func notFoundMessage(err error) string {
	var nf *errs.NotFoundError
	if errors.As(err, &nf) && nf.Resource == "item" {
		return "Item not found."
	}
	return "User not found."
}

// respondStoreError answers any unexpected failure with a 500 carrying
// the underlying message for diagnostics
func respondStoreError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "An internal server error occurred",
		"error":   err.Error(),
	})
}
