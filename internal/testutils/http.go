package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonContentType = "application/json; charset=utf-8"

// HTTPTestSuite sends test requests through a gin engine
type HTTPTestSuite struct {
	Router *gin.Engine
}

// SetupHTTPTest initializes Gin for testing
func SetupHTTPTest() *HTTPTestSuite {
	gin.SetMode(gin.TestMode)
	return &HTTPTestSuite{Router: gin.New()}
}

// MakeRequest creates and executes an HTTP request for testing
func (suite *HTTPTestSuite) MakeRequest(method, url string, body interface{}) *httptest.ResponseRecorder {
	return suite.MakeRequestWithHeaders(method, url, body, nil)
}

// MakeRequestWithHeaders executes a request with custom headers. A string or
// []byte body is sent as is, so malformed payloads can be tested; an empty one
// sends no body. Anything else is encoded as JSON.
func (suite *HTTPTestSuite) MakeRequestWithHeaders(method, url string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		if b != "" {
			reqBody = strings.NewReader(b)
		}
	case []byte:
		if len(b) > 0 {
			reqBody = bytes.NewReader(b)
		}
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			panic("testutils: cannot encode request body: " + err.Error())
		}
		reqBody = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, url, reqBody)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	suite.Router.ServeHTTP(recorder, req)
	return recorder
}

// AssertJSONResponse asserts the response status and unmarshals JSON response
func AssertJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	t.Helper()
	assert.Equal(t, expectedStatus, recorder.Code)
	assert.Equal(t, jsonContentType, recorder.Header().Get("Content-Type"))

	if target != nil {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), target))
	}
}

// AssertErrorResponse asserts an {error, message} body whose error contains expectedError
func AssertErrorResponse(t *testing.T, recorder *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	t.Helper()
	assert.Equal(t, expectedStatus, recorder.Code)

	body := DecodeBody(t, recorder)
	assert.NotContains(t, body, "success", "error responses carry no success flag")
	if expectedError != "" {
		assert.Contains(t, body["error"], expectedError)
	}
}

// AssertSuccessResponse asserts the status and a body with "success": true
func AssertSuccessResponse(t *testing.T, recorder *httptest.ResponseRecorder, expectedStatus int) map[string]interface{} {
	t.Helper()
	assert.Equal(t, expectedStatus, recorder.Code)
	assert.Equal(t, jsonContentType, recorder.Header().Get("Content-Type"))

	body := DecodeBody(t, recorder)
	assert.Equal(t, true, body["success"])
	return body
}

// DecodeBody unmarshals a JSON object response
func DecodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body), "body: %s", recorder.Body.String())
	return body
}

// HTTPTestCase is one request and the response it must produce.
// ExpectedFields compares top-level fields of the decoded body, so numbers are float64.
type HTTPTestCase struct {
	Name           string
	Method         string
	URL            string
	Body           interface{}
	Headers        map[string]string
	Setup          func()
	ExpectedStatus int
	ExpectedError  string
	ExpectedFields map[string]interface{}
	Check          func(t *testing.T, body map[string]interface{})
}

// RunHTTPTestCases runs each case as a subtest
func (suite *HTTPTestSuite) RunHTTPTestCases(t *testing.T, testCases []HTTPTestCase) {
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			if tc.Setup != nil {
				tc.Setup()
			}

			recorder := suite.MakeRequestWithHeaders(tc.Method, tc.URL, tc.Body, tc.Headers)
			require.Equal(t, tc.ExpectedStatus, recorder.Code, "body: %s", recorder.Body.String())

			if tc.ExpectedError == "" && tc.ExpectedFields == nil && tc.Check == nil {
				return
			}

			body := DecodeBody(t, recorder)
			if tc.ExpectedError != "" {
				assert.Equal(t, tc.ExpectedError, body["error"])
			}
			for key, want := range tc.ExpectedFields {
				assert.Equal(t, want, body[key], "field %q", key)
			}
			if tc.Check != nil {
				tc.Check(t, body)
			}
		})
	}
}
