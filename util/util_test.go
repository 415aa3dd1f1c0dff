package util

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAliasIsDeterministic(t *testing.T) {
	assert.Equal(t, GenerateAlias("p1"), GenerateAlias("p1"))
	assert.Contains(t, GenerateAlias("p1"), "Anon ")
}

func TestParsePositiveInt(t *testing.T) {
	assert.Equal(t, 7, ParsePositiveInt("7", 1))
	assert.Equal(t, 1, ParsePositiveInt("seven", 1))
	assert.Equal(t, 10, ParsePositiveInt("0", 10))
	assert.Equal(t, 10, ParsePositiveInt("", 10))
}

func TestParseId(t *testing.T) {
	id, err := ParseId(" abc ")
	assert.Nil(t, err)
	assert.Equal(t, "abc", id)

	_, err = ParseId("")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Status)
}

func TestXSSSanitize(t *testing.T) {
	assert.Equal(t, "hello", XSSSanitize(`<script>alert(1)</script>hello`))
	assert.Equal(t, "<b>bold</b>", XSSSanitize("  <b>bold</b> "))
	assert.Equal(t, "fish & chips", XSSSanitize("fish &amp; chips"))
	assert.NotContains(t, XSSSanitize("&lt;script&gt;alert(1)&lt;/script&gt;"), "<script")
	assert.NotContains(t, XSSSanitize("&amp;lt;script&amp;gt;alert(1)"), "<script")
}

type bindReq struct {
	Content string `json:"content" binding:"required"`
}

func serve(handler Handler, opts *HandlerOpts) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/", HandlerWrapper(handler, opts))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerWrapperEnvelope(t *testing.T) {
	w := serve(func(c *gin.Context) (interface{}, *HTTPError) {
		return gin.H{"id": "x"}, nil
	}, &HandlerOpts{SuccessStatus: http.StatusCreated})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"id":"x"}}`, w.Body.String())
}

func TestHandlerWrapperStatusResponse(t *testing.T) {
	w := serve(func(c *gin.Context) (interface{}, *HTTPError) {
		return &StatusResponse{Status: http.StatusAccepted, Data: "ok"}, nil
	}, nil)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"success":true,"data":"ok"}`, w.Body.String())
}

func TestHandlerWrapperHidesDbCause(t *testing.T) {
	w := serve(func(c *gin.Context) (interface{}, *HTTPError) {
		return nil, BuildDbHTTPErr(errors.New("connection refused"))
	}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Database error"}`, w.Body.String())
}

func TestBuildJSONBindHTTPErrReportsFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/", HandlerWrapper(func(c *gin.Context) (interface{}, *HTTPError) {
		var req bindReq
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, BuildJSONBindHTTPErr(err)
		}
		return req, nil
	}, nil))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", jsonBody(t, map[string]string{})))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "is required", body.Fields["content"])
}

func TestValidateVarUsesBindingMessages(t *testing.T) {
	assert.Nil(t, ValidateVar("email", "sam@example.com", "required,email"))

	httpErr := ValidateVar("email", "sam@", "required,email")
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "must be a valid email", httpErr.Fields["email"])

	httpErr = ValidateVar("email", "", "required,email")
	require.NotNil(t, httpErr)
	assert.Equal(t, "is required", httpErr.Fields["email"])
}
