package main

import (
	"errors"
	"log"
	"net/http"
	"sort"
	"strconv"
	"ticketpro/src/barcode"
	"ticketpro/src/boot"
	"ticketpro/src/common"
	"ticketpro/src/models"
	"ticketpro/src/store"
	"ticketpro/src/types"

	"github.com/gin-gonic/gin"
)

func findTicket(ctx *gin.Context, svc *boot.Services) (*models.Ticket, bool) {
	var params types.SimpleRequestParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	ticket, err := svc.Store.Get(ctx.Request.Context(), params.ID)
	if err != nil {
		if errors.Is(err, store.ErrTicketNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
			return nil, false
		}
		log.Printf("Error retrieving Ticket: %s\n", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return ticket, true
}

func ticketHandlers(g *gin.RouterGroup, svc *boot.Services) *gin.RouterGroup {
	g.
		GET("/tickets", func(ctx *gin.Context) {
			tickets, err := svc.Store.List(ctx.Request.Context())
			if err != nil {
				log.Printf("Error retrieving Tickets: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if mine, _ := strconv.ParseBool(ctx.Query("mine")); mine {
				username := ctx.GetString("username")
				filtered := make([]models.Ticket, 0, len(tickets))
				for _, t := range tickets {
					if t.BookedBy == username {
						filtered = append(filtered, t)
					}
				}
				tickets = filtered
			}
			sort.SliceStable(tickets, func(i, j int) bool {
				return tickets[i].BookingDate.After(tickets[j].BookingDate)
			})
			ctx.JSON(http.StatusOK, gin.H{"data": tickets})
		}).
		GET("/tickets/:id", func(ctx *gin.Context) {
			ticket, ok := findTicket(ctx, svc)
			if !ok {
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": ticket})
		}).
		PATCH("/tickets/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateTicketRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ticket, err := svc.Booking.UpdateTicket(ctx.Request.Context(), params.ID, models.NewTicketUpdate(&body))
			if err != nil {
				var verr *common.ValidationError
				switch {
				case errors.As(err, &verr):
					ctx.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
				case errors.Is(err, store.ErrTicketNotFound):
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
				default:
					log.Printf("Error updating Ticket [%s]: %s\n", params.ID, err.Error())
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				}
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": ticket})
		}).
		GET("/tickets/:id/payload", func(ctx *gin.Context) {
			ticket, ok := findTicket(ctx, svc)
			if !ok {
				return
			}
			payload, err := barcode.Encode(ticket)
			if err != nil {
				log.Printf("Error encoding ticket [%s]: %s\n", ticket.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": payload})
		}).
		GET("/tickets/:id/barcode", func(ctx *gin.Context) {
			var query types.BarcodeQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ticket, ok := findTicket(ctx, svc)
			if !ok {
				return
			}
			if query.ShareLink {
				url, err := svc.Assets.Publish(ctx.Request.Context(), ticket, query.Format)
				if err != nil {
					switch {
					case errors.Is(err, common.ErrAssetsDisabled):
						ctx.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
					case errors.Is(err, common.ErrUnknownFormat):
						ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					default:
						log.Printf("Error publishing barcode for ticket [%s]: %s\n", ticket.ID, err.Error())
						ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
					}
					return
				}
				ctx.JSON(http.StatusOK, gin.H{"url": url})
				return
			}
			data, contentType, err := svc.Assets.Render(ticket, query.Format)
			if err != nil {
				if errors.Is(err, common.ErrUnknownFormat) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				log.Printf("Error rendering barcode for ticket [%s]: %s\n", ticket.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.Data(http.StatusOK, contentType, data)
		})
	return g
}
