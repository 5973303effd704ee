package util

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash is a one-shot status message shown on the next rendered page.
// Category matches the alert levels the templates understand
// (success, info, warning, danger).
type Flash struct {
	Category string
	Message  string
}

func init() {
	// The cookie session serializes values with gob.
	gob.Register(Flash{})
}

// AddFlash queues a flash message on the current session and persists the
// session cookie immediately so a following redirect carries it.
func AddFlash(c *gin.Context, category, message string) {
	session := sessions.Default(c)
	session.AddFlash(Flash{Category: category, Message: message})
	_ = session.Save()
}

// TakeFlashes drains the pending flash messages, persisting the now-empty
// session so each message renders exactly once.
func TakeFlashes(c *gin.Context) []Flash {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = session.Save()

	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}
