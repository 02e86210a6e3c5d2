package novu

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	dataKey       = "data"
	statusCodeKey = "statusCode"
)

// Result is the uniform shape every operation returns for a received HTTP response,
// including 4xx and 5xx responses.
type Result struct {
	StatusCode int `json:"status_code"`
	Detail     any `json:"detail"`
}

// OK reports whether Novu answered with a 2xx status.
func (r *Result) OK() bool {
	if r == nil {
		return false
	}
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// DecodeDetail re-decodes Detail into v, e.g. a Subscriber after GetSubscriber.
func (r *Result) DecodeDetail(v any) error {
	if r == nil {
		return fmt.Errorf("result is nil")
	}

	raw, err := json.Marshal(r.Detail)
	if err != nil {
		return fmt.Errorf("failed to encode detail: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode detail: %w", err)
	}
	return nil
}

// Normalize maps a status code and a decoded JSON body to a Result.
//
// Objects carrying a "data" key yield that value as Detail. Other objects are returned
// without the "statusCode" key, which only repeats the HTTP status. Anything that is not
// an object is passed through untouched.
func Normalize(statusCode int, body any) Result {
	result := Result{StatusCode: statusCode}

	obj, ok := body.(map[string]any)
	if !ok {
		result.Detail = body
		return result
	}

	if data, ok := obj[dataKey]; ok {
		result.Detail = data
		return result
	}

	if _, ok := obj[statusCodeKey]; !ok {
		result.Detail = obj
		return result
	}

	detail := make(map[string]any, len(obj)-1)
	for k, v := range obj {
		if k == statusCodeKey {
			continue
		}
		detail[k] = v
	}
	result.Detail = detail
	return result
}
