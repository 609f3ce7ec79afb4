package http

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ali-aqib/blog/internal/domain"
	"github.com/ali-aqib/blog/internal/service"
)

// RegisterForm 注册表单
type RegisterForm struct {
	Email    string `form:"email" binding:"required,email,max=250"`
	Password string `form:"password" binding:"required,min=1"`
	Name     string `form:"name" binding:"required,max=250"`
}

// LoginForm 登录表单
type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// CommentForm 评论表单
type CommentForm struct {
	Comment string `form:"comment" binding:"required"`
}

// PostForm 创建/编辑文章表单
type PostForm struct {
	Title    string `form:"title" binding:"required,max=250"`
	Subtitle string `form:"subtitle" binding:"required,max=250"`
	ImgURL   string `form:"img_url" binding:"required,url,max=250"`
	Body     string `form:"body" binding:"required"`
}

func (f PostForm) input() service.PostInput {
	return service.PostInput{Title: f.Title, Subtitle: f.Subtitle, Body: f.Body, ImgURL: f.ImgURL}
}

func postFormOf(p *domain.Post) PostForm {
	return PostForm{Title: p.Title, Subtitle: p.Subtitle, ImgURL: p.ImgURL, Body: p.Body}
}

// ContactForm 联系表单
type ContactForm struct {
	Name    string `form:"name" binding:"required"`
	Email   string `form:"email" binding:"required,email"`
	Phone   string `form:"phone" binding:"required"`
	Message string `form:"message" binding:"required"`
}

func (f ContactForm) message() domain.ContactMessage {
	return domain.ContactMessage{Name: f.Name, Email: f.Email, Phone: f.Phone, Message: f.Message}
}

// fieldErrors 把绑定错误转换为 "字段名 -> 提示" 的映射，供模板在字段旁显示。
// 非校验类错误 (例如请求体无法解析) 放在 "Form" 键下。
func fieldErrors(err error) map[string]string {
	errs := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["Form"] = "The form could not be processed, please try again."
		return errs
	}
	for _, fe := range verrs {
		errs[fe.Field()] = fieldMessage(fe)
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "url":
		return "Invalid URL."
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
	default:
		return "Invalid value."
	}
}
