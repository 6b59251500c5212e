package middleware

import (
	"TUReviews/internal/i18n"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const LocaleCtx = "locale"

func LocaleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tag := i18n.Match(c.GetHeader("Accept-Language"))
		c.Set(LocaleCtx, tag)
		c.Header("Content-Language", tag.String())
		c.Next()
	}
}

// Locale returns the language picked for the request, Thai when unset.
func Locale(c *gin.Context) language.Tag {
	if v, ok := c.Get(LocaleCtx); ok {
		if tag, ok := v.(language.Tag); ok {
			return tag
		}
	}
	return language.Thai
}

// T localizes key for the request.
func T(c *gin.Context, key i18n.Key) string {
	return i18n.Message(Locale(c), key)
}
