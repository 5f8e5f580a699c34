package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is set at build time through -ldflags.
var Version = "dev"

// getHome godoc
// @Summary Show the status of server.
// @Description get the status and build version of the ledger API.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"service": "smallbiz-ledger", "version": Version})
}
