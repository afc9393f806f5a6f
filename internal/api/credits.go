package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mfenderov/docscan/pkg/models"
)

func registerCreditRoutes(r *gin.Engine, h *handler) {
	g := r.Group("/credits")
	g.GET("/balance/:email", h.handleBalance)
	g.POST("/request", h.handleCreditRequest)
	g.GET("/requests/:email", h.handleListCreditRequests)
}

func registerAdminRoutes(r *gin.Engine, h *handler) {
	g := r.Group("/admin/credits")
	g.GET("/pending", h.handleListAllCreditRequests)
	g.GET("/requests/:id", h.handleGetCreditRequest)
	g.POST("/approve", h.handleDecideCreditRequest)
}

// CreditRequestBody is the payload of POST /credits/request.
type CreditRequestBody struct {
	Email   string `json:"email" binding:"required"`
	Credits int    `json:"credits" binding:"required"`
	Reason  string `json:"reason"`
}

// DecisionBody is the payload of POST /admin/credits/approve.
type DecisionBody struct {
	RequestID       int64  `json:"requestId" binding:"required"`
	Action          string `json:"action" binding:"required"` // "approved" or "rejected"
	ApprovedAmount  int    `json:"approvedAmount"`
	RejectionReason string `json:"rejectionReason"`
}

func (h *handler) handleBalance(c *gin.Context) {
	credits, err := h.store.Balance(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"credits": credits})
}

func (h *handler) handleCreditRequest(c *gin.Context) {
	var body CreditRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := h.store.SubmitCreditRequest(c.Request.Context(), body.Email, body.Credits, body.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Credit request submitted successfully",
		"request": req,
	})
}

func (h *handler) handleListCreditRequests(c *gin.Context) {
	requests, err := h.store.ListCreditRequests(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *handler) handleListAllCreditRequests(c *gin.Context) {
	requests, err := h.store.ListAllCreditRequests(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *handler) handleGetCreditRequest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	req, err := h.store.GetCreditRequest(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}

func (h *handler) handleDecideCreditRequest(c *gin.Context) {
	var body DecisionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.CreditRequestStatus(body.Action)
	err := h.store.DecideCreditRequest(c.Request.Context(), body.RequestID, status, body.ApprovedAmount, body.RejectionReason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Request %s successfully", body.Action)})
}
