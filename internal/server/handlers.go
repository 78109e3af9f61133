package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poyulin/tally/internal/apperrors"
	"github.com/poyulin/tally/internal/service"
)

type handlers struct {
	svc *service.ProjectService
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// respondError maps the service error taxonomy onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrProjectClosed):
		status = http.StatusConflict
	default:
		slog.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

type createProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *handlers) createProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.svc.CreateProject(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handlers) listProjects(c *gin.Context) {
	projects, err := h.svc.ListProjects(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *handlers) getProject(c *gin.Context) {
	p, err := h.svc.GetProject(c.Request.Context(), c.Param("projectID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *handlers) updateProject(c *gin.Context) {
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	projectID := c.Param("projectID")
	ctx := c.Request.Context()

	if req.Name != nil {
		if _, err := h.svc.UpdateProjectName(ctx, projectID, *req.Name); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.Description != nil {
		if _, err := h.svc.UpdateProjectDescription(ctx, projectID, *req.Description); err != nil {
			respondError(c, err)
			return
		}
	}

	p, err := h.svc.GetProject(ctx, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required,projectstatus"`
}

func (h *handlers) setProjectStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.svc.SetProjectStatus(c.Request.Context(), c.Param("projectID"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) deleteProject(c *gin.Context) {
	if err := h.svc.DeleteProject(c.Request.Context(), c.Param("projectID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

func (h *handlers) addCategory(c *gin.Context) {
	var req addCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.svc.AddCategory(c.Request.Context(), c.Param("projectID"), req.Category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": p.Categories})
}

func (h *handlers) categoryTotals(c *gin.Context) {
	totals, err := h.svc.GetCategoryTotals(c.Request.Context(), c.Param("projectID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totals": totals})
}

type createMemberRequest struct {
	Name   string `json:"name" binding:"required"`
	Avatar string `json:"avatar"`
}

func (h *handlers) createMember(c *gin.Context) {
	var req createMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m, err := h.svc.CreateMember(c.Request.Context(), c.Param("projectID"), req.Name, req.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

type updateMemberRequest struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

func (h *handlers) updateMember(c *gin.Context) {
	var req updateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	projectID, memberID := c.Param("projectID"), c.Param("memberID")
	ctx := c.Request.Context()

	if req.Name != nil {
		if _, err := h.svc.RenameMember(ctx, projectID, memberID, *req.Name); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.Avatar != nil {
		if _, err := h.svc.UpdateMemberAvatar(ctx, projectID, memberID, *req.Avatar); err != nil {
			respondError(c, err)
			return
		}
	}

	p, err := h.svc.GetProject(ctx, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	m := p.MemberByID(memberID)
	if m == nil {
		respondError(c, apperrors.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *handlers) removeMember(c *gin.Context) {
	if err := h.svc.RemoveMember(c.Request.Context(), c.Param("projectID"), c.Param("memberID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addTransactionRequest struct {
	Title        string   `json:"title" binding:"required"`
	Date         string   `json:"date" binding:"required"`
	Amount       float64  `json:"amount" binding:"required,gt=0"`
	PayerID      string   `json:"payerId" binding:"required"`
	Category     string   `json:"category"`
	Participants []string `json:"participants"`
}

func (h *handlers) addTransaction(c *gin.Context) {
	var req addTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tx, err := h.svc.AddTransaction(c.Request.Context(), c.Param("projectID"), service.TransactionInput{
		Title:        req.Title,
		Date:         req.Date,
		Amount:       req.Amount,
		PayerID:      req.PayerID,
		Category:     req.Category,
		Participants: req.Participants,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

type updateTransactionRequest struct {
	Title        *string   `json:"title"`
	Date         *string   `json:"date"`
	Amount       *float64  `json:"amount"`
	PayerID      *string   `json:"payerId"`
	Category     *string   `json:"category"`
	Participants *[]string `json:"participants"`
}

func (h *handlers) updateTransaction(c *gin.Context) {
	var req updateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tx, err := h.svc.UpdateTransaction(c.Request.Context(), c.Param("projectID"), c.Param("transactionID"), service.TransactionPatch{
		Title:        req.Title,
		Date:         req.Date,
		Amount:       req.Amount,
		PayerID:      req.PayerID,
		Category:     req.Category,
		Participants: req.Participants,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *handlers) removeTransaction(c *gin.Context) {
	if err := h.svc.RemoveTransaction(c.Request.Context(), c.Param("projectID"), c.Param("transactionID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) toggleConfirmation(c *gin.Context) {
	confirmed, err := h.svc.ToggleConfirmation(c.Request.Context(),
		c.Param("projectID"), c.Param("transactionID"), c.Param("memberID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirmed": confirmed})
}

func (h *handlers) allMemberStats(c *gin.Context) {
	stats, err := h.svc.GetAllMemberStats(c.Request.Context(), c.Param("projectID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, roundedAllStats(stats))
}

func (h *handlers) memberStats(c *gin.Context) {
	stats, err := h.svc.GetMemberStats(c.Request.Context(), c.Param("projectID"), c.Param("memberID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, roundedMemberStats(stats))
}

func (h *handlers) settlementPlan(c *gin.Context) {
	plan, err := h.svc.GetSettlementPlan(c.Request.Context(), c.Param("projectID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transfers": plan})
}

func (h *handlers) obligations(c *gin.Context) {
	obligations, err := h.svc.GetTransactionObligations(c.Request.Context(), c.Param("projectID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"obligations": obligations})
}
