package main

import (
	"errors"
	"log"
	"net/http"
	"ticketpro/src/barcode"
	"ticketpro/src/boot"
	"ticketpro/src/types"

	"github.com/gin-gonic/gin"
)

func scanHandlers(g *gin.RouterGroup, svc *boot.Services) *gin.RouterGroup {
	g.POST("/scan", func(ctx *gin.Context) {
		var body types.ScanRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		res, err := svc.Scanner.Scan(ctx.Request.Context(), body.Code)
		if err != nil {
			if errors.Is(err, barcode.ErrEmptyInput) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a barcode"})
				return
			}
			log.Printf("Error scanning barcode: %s\n", err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !res.Found() {
			ctx.JSON(http.StatusNotFound, gin.H{
				"error": res.Message(),
				"code":  res.Input,
				"known": res.Known,
			})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"data": res.Ticket, "source": res.Source})
	})
	return g
}
