package main

import (
	"errors"
	"log"
	"net/http"
	"ticketpro/src/boot"
	"ticketpro/src/common"
	"ticketpro/src/controllers"
	"ticketpro/src/types"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(g *gin.RouterGroup, svc *boot.Services) *gin.RouterGroup {
	g.POST("/bookings", func(ctx *gin.Context) {
		var body types.CreateBookingRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ticket, err := svc.Booking.Book(ctx.Request.Context(), &body, controllers.CurrentUser(ctx))
		if err != nil {
			var verr *common.ValidationError
			if errors.As(err, &verr) {
				ctx.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
				return
			}
			log.Printf("Error creating booking: %s\n", err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusCreated, gin.H{"id": ticket.ID, "data": ticket})
	})
	return g
}
