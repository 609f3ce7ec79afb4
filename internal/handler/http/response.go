package http

import (
	"crypto/md5"
	"embed"
	"encoding/hex"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/ali-aqib/blog/internal/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

// 正文和评论来自富文本编辑器，渲染前按 UGC 策略过滤
var htmlPolicy = bluemonday.UGCPolicy()

// LoadTemplates 解析内嵌模板并注册模板函数
func LoadTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"safeHTML": safeHTML,
		"gravatar": gravatarURL,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

func safeHTML(s string) template.HTML {
	return template.HTML(htmlPolicy.Sanitize(s))
}

// gravatarURL 返回评论者头像地址 (size 100, rating g, default retro)
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=100&r=g&d=retro"
}

// viewData 合并每个页面都需要的数据：当前用户、flash 消息和年份
func viewData(c *gin.Context, data gin.H) gin.H {
	view := gin.H{}
	for k, v := range data {
		view[k] = v
	}
	user := middleware.CurrentUser(c)
	view["CurrentUser"] = user
	view["LoggedIn"] = user != nil
	view["IsAdmin"] = user.IsAdmin()
	view["Flashes"] = takeFlashes(c)
	view["Year"] = time.Now().Year()
	return view
}

// Render 渲染页面
func Render(c *gin.Context, code int, name string, data gin.H) {
	c.HTML(code, name, viewData(c, data))
}

// ErrorResponse 渲染错误页面
func ErrorResponse(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{
		"Status":  code,
		"Title":   http.StatusText(code),
		"Message": message,
	})
}

// Redirect 使用 303，使 POST 之后的跳转总是发起 GET
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
