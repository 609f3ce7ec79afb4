package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ali-aqib/blog/internal/domain"
	httpHandler "github.com/ali-aqib/blog/internal/handler/http"
	gormpersistence "github.com/ali-aqib/blog/internal/infra/persistence/gorm"
	"github.com/ali-aqib/blog/internal/infra/setup"
	"github.com/ali-aqib/blog/internal/middleware"
	"github.com/ali-aqib/blog/internal/notify"
	"github.com/ali-aqib/blog/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubDispatcher struct {
	err  error
	sent int
}

func (d *stubDispatcher) Dispatch(context.Context, domain.ContactMessage) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	d.sent++
	return "", nil
}

type testApp struct {
	router     *gin.Engine
	db         *gorm.DB
	dispatcher *stubDispatcher
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := setup.InitDB("sqlite://file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, setup.MigrateDB(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	authService, err := service.NewAuthService(gormpersistence.NewGormUserRepository(db), "test-secret", 1)
	require.NoError(t, err)
	postService := service.NewPostService(gormpersistence.NewGormPostRepository(db))
	commentService := service.NewCommentService(gormpersistence.NewGormCommentRepository(db))
	dispatcher := &stubDispatcher{}
	contactService := service.NewContactService(dispatcher, nil)

	tmpl, err := httpHandler.LoadTemplates()
	require.NoError(t, err)
	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(middleware.Session(authService, false))
	httpHandler.RegisterRoutes(router, httpHandler.Handlers{
		Auth:     httpHandler.NewAuthHandler(authService, false),
		Posts:    httpHandler.NewPostHandler(postService, commentService),
		Comments: httpHandler.NewCommentHandler(commentService),
		Pages:    httpHandler.NewPageHandler(contactService),
	})
	return &testApp{router: router, db: db, dispatcher: dispatcher}
}

func (a *testApp) do(method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name && c.Value != "" {
			return c
		}
	}
	return nil
}

// register 注册用户并返回会话 Cookie
func (a *testApp) register(t *testing.T, email, name string) *http.Cookie {
	t.Helper()
	w := a.do(http.MethodPost, "/register", url.Values{"email": {email}, "password": {"pw"}, "name": {name}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
	session := cookieNamed(w, middleware.SessionCookieName)
	require.NotNil(t, session, "注册成功后应直接登录")
	return session
}

func (a *testApp) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, a.db.Model(model).Count(&n).Error)
	return n
}

func postForm(title string) url.Values {
	return url.Values{
		"title":    {title},
		"subtitle": {"sub"},
		"img_url":  {"https://example.com/a.png"},
		"body":     {"<p>Body</p><script>alert(1)</script>"},
	}
}

func TestRegister_DuplicateEmailRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "a@x.com", "A")

	w := app.do(http.MethodPost, "/register", url.Values{"email": {"a@x.com"}, "password": {"other"}, "name": {"Other"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Nil(t, cookieNamed(w, middleware.SessionCookieName))
	assert.Equal(t, int64(1), app.count(t, &domain.User{}))

	flash := cookieNamed(w, "flash")
	require.NotNil(t, flash)
	page := app.do(http.MethodGet, "/login", nil, flash)
	assert.Contains(t, page.Body.String(), "already signed up with that email")
}

func TestRegister_InvalidForm(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/register", url.Values{"email": {"not-an-email"}, "password": {"pw"}, "name": {"A"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email address.")
	assert.Zero(t, app.count(t, &domain.User{}))
}

func TestLogin_FailureMessageDoesNotLeak(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "a@x.com", "A")

	wrongPassword := app.do(http.MethodPost, "/login", url.Values{"email": {"a@x.com"}, "password": {"nope"}})
	unknownEmail := app.do(http.MethodPost, "/login", url.Values{"email": {"b@x.com"}, "password": {"pw"}})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Contains(t, wrongPassword.Body.String(), "Invalid email or password, please try again.")
	assert.Contains(t, unknownEmail.Body.String(), "Invalid email or password, please try again.")
	assert.Nil(t, cookieNamed(wrongPassword, middleware.SessionCookieName))
}

func TestLoginAndLogout(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "a@x.com", "A")

	w := app.do(http.MethodPost, "/login", url.Values{"email": {"A@x.com"}, "password": {"pw"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	session := cookieNamed(w, middleware.SessionCookieName)
	require.NotNil(t, session)

	home := app.do(http.MethodGet, "/", nil, session)
	assert.Contains(t, home.Body.String(), "Log Out")

	out := app.do(http.MethodGet, "/logout", nil, session)
	assert.Equal(t, http.StatusSeeOther, out.Code)
	assert.Contains(t, out.Header().Get("Set-Cookie"), middleware.SessionCookieName+"=;")
}

func TestAdminRoutes_ForbiddenForOthers(t *testing.T) {
	app := newTestApp(t)
	adminSession := app.register(t, "admin@x.com", "Admin")
	guestSession := app.register(t, "guest@x.com", "Guest")

	require.Equal(t, http.StatusSeeOther, app.do(http.MethodPost, "/new-post", postForm("Hello"), adminSession).Code)

	for _, session := range []*http.Cookie{guestSession, nil} {
		var cookies []*http.Cookie
		if session != nil {
			cookies = append(cookies, session)
		}
		assert.Equal(t, http.StatusForbidden, app.do(http.MethodGet, "/new-post", nil, cookies...).Code)
		assert.Equal(t, http.StatusForbidden, app.do(http.MethodPost, "/new-post", postForm("World"), cookies...).Code)
		assert.Equal(t, http.StatusForbidden, app.do(http.MethodPost, "/edit-post/1", postForm("Changed"), cookies...).Code)
		assert.Equal(t, http.StatusForbidden, app.do(http.MethodGet, "/delete/1", nil, cookies...).Code)
	}

	assert.Equal(t, int64(1), app.count(t, &domain.Post{}), "被拒绝的请求不应修改数据")
	var post domain.Post
	require.NoError(t, app.db.First(&post, 1).Error)
	assert.Equal(t, "Hello", post.Title)
}

func TestCreatePost_DuplicateTitle(t *testing.T) {
	app := newTestApp(t)
	adminSession := app.register(t, "admin@x.com", "Admin")

	first := app.do(http.MethodPost, "/new-post", postForm("Hello"), adminSession)
	require.Equal(t, http.StatusSeeOther, first.Code)
	assert.Equal(t, "/", first.Header().Get("Location"))

	second := app.do(http.MethodPost, "/new-post", postForm("Hello"), adminSession)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "A post with that title already exists.")
	assert.Equal(t, int64(1), app.count(t, &domain.Post{}))
}

func TestShowPost(t *testing.T) {
	app := newTestApp(t)
	adminSession := app.register(t, "admin@x.com", "Admin")
	require.Equal(t, http.StatusSeeOther, app.do(http.MethodPost, "/new-post", postForm("Hello"), adminSession).Code)

	w := app.do(http.MethodGet, "/post/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<p>Body</p>")
	assert.NotContains(t, w.Body.String(), "<script>alert(1)</script>", "正文应经过过滤")

	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/post/999", nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/post/abc", nil).Code)
}

func TestEditPost(t *testing.T) {
	app := newTestApp(t)
	adminSession := app.register(t, "admin@x.com", "Admin")
	require.Equal(t, http.StatusSeeOther, app.do(http.MethodPost, "/new-post", postForm("Hello"), adminSession).Code)

	page := app.do(http.MethodGet, "/edit-post/1", nil, adminSession)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), `value="Hello"`, "编辑表单应预填")

	w := app.do(http.MethodPost, "/edit-post/1", postForm("Hello again"), adminSession)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/post/1", w.Header().Get("Location"))

	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/edit-post/999", nil, adminSession).Code)
}

func TestComment_AnonymousRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)
	adminSession := app.register(t, "admin@x.com", "Admin")
	require.Equal(t, http.StatusSeeOther, app.do(http.MethodPost, "/new-post", postForm("Hello"), adminSession).Code)

	w := app.do(http.MethodPost, "/post/1", url.Values{"comment": {"Nice"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.NotNil(t, cookieNamed(w, "flash"))
	assert.Zero(t, app.count(t, &domain.Comment{}))
}

func TestDeleteComment_OnlyOwner(t *testing.T) {
	app := newTestApp(t)
	adminSession := app.register(t, "admin@x.com", "Admin")
	guestSession := app.register(t, "guest@x.com", "Guest")
	require.Equal(t, http.StatusSeeOther, app.do(http.MethodPost, "/new-post", postForm("Hello"), adminSession).Code)

	w := app.do(http.MethodPost, "/post/1", url.Values{"comment": {"Nice"}}, guestSession)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/post/1", w.Header().Get("Location"))
	require.Equal(t, int64(1), app.count(t, &domain.Comment{}))

	page := app.do(http.MethodGet, "/post/1", nil, guestSession)
	assert.Contains(t, page.Body.String(), "/delete-comment/1")
	assert.Contains(t, page.Body.String(), "gravatar.com/avatar/")

	assert.Equal(t, http.StatusForbidden, app.do(http.MethodGet, "/delete-comment/1", nil, adminSession).Code, "管理员也不能删除他人评论")
	assert.Equal(t, http.StatusForbidden, app.do(http.MethodGet, "/delete-comment/1", nil).Code)
	assert.Equal(t, int64(1), app.count(t, &domain.Comment{}))

	del := app.do(http.MethodGet, "/delete-comment/1", nil, guestSession)
	assert.Equal(t, http.StatusSeeOther, del.Code)
	assert.Equal(t, "/post/1", del.Header().Get("Location"))
	assert.Zero(t, app.count(t, &domain.Comment{}))

	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/delete-comment/1", nil, guestSession).Code)
}

func TestDeletePost_RemovesComments(t *testing.T) {
	app := newTestApp(t)
	adminSession := app.register(t, "admin@x.com", "Admin")
	require.Equal(t, http.StatusSeeOther, app.do(http.MethodPost, "/new-post", postForm("Hello"), adminSession).Code)
	require.Equal(t, http.StatusSeeOther, app.do(http.MethodPost, "/post/1", url.Values{"comment": {"Nice"}}, adminSession).Code)

	w := app.do(http.MethodGet, "/delete/1", nil, adminSession)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Zero(t, app.count(t, &domain.Post{}))
	assert.Zero(t, app.count(t, &domain.Comment{}))
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/delete/1", nil, adminSession).Code)
}

func TestContact(t *testing.T) {
	app := newTestApp(t)
	form := url.Values{"name": {"Ann"}, "email": {"ann@x.com"}, "phone": {"123"}, "message": {"Hi"}}

	w := app.do(http.MethodPost, "/contact", form)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/contact?msg_sent=True", w.Header().Get("Location"))
	assert.Equal(t, 1, app.dispatcher.sent)
	assert.Contains(t, app.do(http.MethodGet, "/contact?msg_sent=True", nil).Body.String(), "Successfully sent your message")

	app.dispatcher.err = notify.ErrDelivery
	failed := app.do(http.MethodPost, "/contact", form)
	assert.Equal(t, http.StatusOK, failed.Code)
	assert.Contains(t, failed.Body.String(), "could not be sent")

	invalid := app.do(http.MethodPost, "/contact", url.Values{"name": {"Ann"}})
	assert.Equal(t, http.StatusBadRequest, invalid.Code)
}

func TestStaticPages(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/about", nil).Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/ping", nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/nope", nil).Code)
}
