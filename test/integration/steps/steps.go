//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

func jsonUnmarshal(content string, v any) error {
	return json.Unmarshal([]byte(content), v)
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.token = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(body.Content)
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	if err := t.startServer(); err != nil {
		return err
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.server.URL+path, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) responseBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.responseBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.responseBody()
	if err != nil {
		return err
	}

	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldNotExist(field string) error {
	body, err := t.responseBody()
	if err != nil {
		return err
	}

	if value := getFieldValue(body, field); value != nil {
		return fmt.Errorf("field '%s' expected to be absent, got %v", field, value)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, quantity int) error {
	body, err := t.responseBody()
	if err != nil {
		return err
	}

	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != quantity {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, quantity, len(items))
	}
	return nil
}

func (t *testContext) theAnalyticsEndpointShouldHaveReceivedTheQuery(path, name, expected string) error {
	query, err := t.lastUpstreamQuery(path)
	if err != nil {
		return err
	}

	actual, ok := query[name]
	if !ok {
		return fmt.Errorf("query '%s' not sent to %s: %v", name, path, query)
	}
	if actual != expected {
		return fmt.Errorf("query '%s' expected '%s', got '%s'", name, expected, actual)
	}
	return nil
}

func (t *testContext) theAnalyticsEndpointShouldNotHaveReceivedTheQuery(path, name string) error {
	query, err := t.lastUpstreamQuery(path)
	if err != nil {
		return err
	}

	if actual, ok := query[name]; ok {
		return fmt.Errorf("query '%s' expected to be absent from %s, got '%s'", name, path, actual)
	}
	return nil
}

func (t *testContext) theAnalyticsEndpointShouldHaveReceivedTheHeader(path, name, expected string) error {
	count := t.analytics.RequestCount(http.MethodGet, path)
	if count == 0 {
		return fmt.Errorf("no request reached %s", path)
	}

	actual := t.analytics.GetRequestHeaders(http.MethodGet, path, count-1).Get(name)
	if actual != expected {
		return fmt.Errorf("header '%s' expected '%s', got '%s'", name, expected, actual)
	}
	return nil
}

func (t *testContext) lastUpstreamQuery(path string) (map[string]string, error) {
	count := t.analytics.RequestCount(http.MethodGet, path)
	if count == 0 {
		return nil, fmt.Errorf("no request reached %s", path)
	}
	return t.analytics.GetRequestQueries(http.MethodGet, path, count-1), nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		result := t.db.DbConn.Find(entitySlicePtr.Interface())
		if result.Error != nil {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theStoredPreferenceFieldShouldBe(key, field, expectedValue string) error {
	raw, found, err := t.storage.Preferences.Get(context.Background(), t.ownerID, key)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("preference '%s' not stored", key)
	}

	var stored map[string]any
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return fmt.Errorf("preference '%s' is not JSON: %w", key, err)
	}

	actualValue := fmt.Sprintf("%v", getFieldValue(stored, field))
	if actualValue != expectedValue {
		return fmt.Errorf("stored field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	fields := strings.Split(dotSeparatedField, ".")
	field := object

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
