package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/ali-aqib/blog/internal/domain"
	"github.com/ali-aqib/blog/internal/service"
)

const msgDeliveryFailed = "Sorry, your message could not be sent. Please try again later."

// PageHandler 处理静态页面和联系表单
type PageHandler struct {
	contactService *service.ContactService
}

// NewPageHandler 创建 PageHandler 实例
func NewPageHandler(contactService *service.ContactService) *PageHandler {
	if contactService == nil {
		panic("ContactService cannot be nil for PageHandler")
	}
	return &PageHandler{contactService: contactService}
}

// About 关于页面
func (h *PageHandler) About(c *gin.Context) {
	Render(c, http.StatusOK, "about.html", nil)
}

// ContactPage 显示联系表单。
// ?msg_sent=True 表示同步发送成功；?ticket=<id> 显示后台投递状态。
func (h *PageHandler) ContactPage(c *gin.Context) {
	data := gin.H{
		"Form":    ContactForm{},
		"MsgSent": c.Query("msg_sent") == "True",
	}
	if ticket := c.Query("ticket"); ticket != "" {
		status, err := h.contactService.DeliveryStatus(c.Request.Context(), ticket)
		if err != nil {
			HandleServiceError(c, err)
			return
		}
		data["Queued"] = status == domain.DeliveryQueued
		data["MsgSent"] = status == domain.DeliverySent
		data["MsgFailed"] = status == domain.DeliveryFailed
	}
	Render(c, http.StatusOK, "contact.html", data)
}

// SubmitContact 处理联系表单。投递失败时提示用户，而不是返回 500。
func (h *PageHandler) SubmitContact(c *gin.Context) {
	var form ContactForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "contact.html", gin.H{"Form": form, "Errors": fieldErrors(err)})
		return
	}

	ticket, err := h.contactService.Submit(c.Request.Context(), form.message())
	if err != nil {
		if errors.Is(err, service.ErrDeliveryFailed) {
			setFlash(c, msgDeliveryFailed)
			Render(c, http.StatusOK, "contact.html", gin.H{"Form": form, "MsgFailed": true})
			return
		}
		HandleServiceError(c, err)
		return
	}

	if ticket != "" {
		Redirect(c, "/contact?ticket="+url.QueryEscape(ticket))
		return
	}
	Redirect(c, "/contact?msg_sent=True")
}
