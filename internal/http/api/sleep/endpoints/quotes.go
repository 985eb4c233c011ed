package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/sleepyhq/sleepy/internal/http/api"
	"github.com/sleepyhq/sleepy/internal/http/api/sleep/packets"
	"github.com/sleepyhq/sleepy/internal/quotes"
)

func QuotesModule() api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/quotes/random", randomQuote)
		c.GET("/quotes/supportive", supportiveQuote)
		c.GET("/quotes/urgent", urgentQuote)
	})
}

func randomQuote(ctx *gin.Context) (any, *api.APIError) {
	return packets.QuoteResponse{Quote: quotes.Random()}, nil
}

func supportiveQuote(ctx *gin.Context) (any, *api.APIError) {
	return packets.QuoteResponse{Quote: quotes.Supportive()}, nil
}

func urgentQuote(ctx *gin.Context) (any, *api.APIError) {
	return packets.QuoteResponse{Quote: quotes.Urgent()}, nil
}
