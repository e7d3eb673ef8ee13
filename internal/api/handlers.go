package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"solana-wallet-forensics/internal/domain"
	"solana-wallet-forensics/internal/forensics"
	"solana-wallet-forensics/internal/registry"
	"solana-wallet-forensics/internal/storage"
)

// Service is the engine surface served over HTTP.
type Service interface {
	Trace(ctx context.Context, wallet string, limit int) (*forensics.TraceResult, error)
	Report(ctx context.Context, wallet string, limit int) (*forensics.ReportResult, error)
	ScanFile(ctx context.Context, document string) (*domain.ScanResult, error)
	MultiHop(ctx context.Context, wallet string, hops, limit int) (*domain.MultiHopGraph, error)
	Tokens(ctx context.Context, wallet string) (*forensics.TokensResult, error)
	Extract(text string) *forensics.ExtractResult
	Analyses(ctx context.Context, wallet string, limit int) ([]*domain.AnalysisRecord, error)
	Label(address string) *registry.LabelInfo
}

// Handler serves the forensics routes.
type Handler struct {
	svc            Service
	maxUploadBytes int64
	logger         *zap.Logger
}

type walletRequest struct {
	Wallet string `json:"wallet"`
	Limit  int    `json:"limit"`
}

type multiHopRequest struct {
	Wallet string `json:"wallet"`
	Hops   int    `json:"hops"`
	Limit  int    `json:"limit"`
}

type textRequest struct {
	Text string `json:"text"`
}

func (h *Handler) bindWallet(c *gin.Context) (walletRequest, bool) {
	var req walletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return req, false
	}
	req.Wallet = strings.TrimSpace(req.Wallet)
	if req.Wallet == "" {
		badRequest(c, "wallet is required")
		return req, false
	}
	return req, true
}

func (h *Handler) handleTrace(c *gin.Context) {
	req, ok := h.bindWallet(c)
	if !ok {
		return
	}
	res, err := h.svc.Trace(c.Request.Context(), req.Wallet, req.Limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) handleReport(c *gin.Context) {
	req, ok := h.bindWallet(c)
	if !ok {
		return
	}
	res, err := h.svc.Report(c.Request.Context(), req.Wallet, req.Limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) handleMultiHop(c *gin.Context) {
	var req multiHopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	req.Wallet = strings.TrimSpace(req.Wallet)
	if req.Wallet == "" {
		badRequest(c, "wallet is required")
		return
	}
	res, err := h.svc.MultiHop(c.Request.Context(), req.Wallet, req.Hops, req.Limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) handleTokens(c *gin.Context) {
	res, err := h.svc.Tokens(c.Request.Context(), c.Param("wallet"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleScan accepts either a JSON {"text": ...} body or a multipart upload
// in the "file" field.
func (h *Handler) handleScan(c *gin.Context) {
	text, ok := h.readDocument(c)
	if !ok {
		return
	}
	res, err := h.svc.ScanFile(c.Request.Context(), text)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) handleExtract(c *gin.Context) {
	text, ok := h.readDocument(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Extract(text))
}

func (h *Handler) readDocument(c *gin.Context) (string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			badRequest(c, "file is required")
			return "", false
		}
		f, err := fh.Open()
		if err != nil {
			badRequest(c, "unreadable upload")
			return "", false
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			badRequest(c, "unreadable upload")
			return "", false
		}
		return string(data), true
	}

	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return "", false
	}
	return req.Text, true
}

func (h *Handler) handleLabel(c *gin.Context) {
	info := h.svc.Label(c.Param("address"))
	if info == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "address not in registry"})
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *Handler) handleAnalyses(c *gin.Context) {
	limit := storage.DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > storage.DefaultListLimit {
			badRequest(c, fmt.Sprintf("limit must be an integer between 1 and %d", storage.DefaultListLimit))
			return
		}
		limit = n
	}
	records, err := h.svc.Analyses(c.Request.Context(), c.Query("wallet"), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	if records == nil {
		records = []*domain.AnalysisRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"analyses": records})
}
