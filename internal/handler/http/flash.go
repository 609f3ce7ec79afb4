package http

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	flashCookieName = "flash"
	flashContextKey = "pending_flash"
)

// setFlash 设置一条 flash 消息。
// 同一请求内渲染的页面会直接显示；重定向后由下一个请求从 Cookie 中取出。
func setFlash(c *gin.Context, message string) {
	c.Set(flashContextKey, message)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, base64.RawURLEncoding.EncodeToString([]byte(message)), 0, "/", "", false, true)
}

// takeFlashes 取出并清除 flash 消息
func takeFlashes(c *gin.Context) []string {
	var flashes []string
	if v, ok := c.Get(flashContextKey); ok {
		if msg, _ := v.(string); msg != "" {
			flashes = append(flashes, msg)
		}
		c.Set(flashContextKey, "")
	} else if raw, err := c.Cookie(flashCookieName); err == nil && raw != "" {
		if decoded, err := base64.RawURLEncoding.DecodeString(raw); err == nil && len(decoded) > 0 {
			flashes = append(flashes, string(decoded))
		}
	} else {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, "", -1, "/", "", false, true)
	return flashes
}
