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
	"time"

	"github.com/cucumber/godog"
	"gorm.io/gorm"

	"github.com/finance-ledger/api/internal/integration/persistence/model"
)

func (t *testContext) theDefaultCategoriesAreSeeded() error {
	_, err := injector.SeedDefaultCategories.Execute(context.Background())
	return err
}

// aCategoryExistsWithNameAndType inserts a category; type is "income" or "expense".
func (t *testContext) aCategoryExistsWithNameAndType(name, categoryType string) error {
	now := time.Now().UTC()
	category := &model.CategoryModel{
		Name:      name,
		IsIncome:  categoryType == "income",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := testDB.DbConn.Create(category).Error; err != nil {
		return err
	}
	t.lastCategoryID = strconv.FormatUint(uint64(category.ID), 10)
	return nil
}

// theCategoryIsSelected points {{category_id}} at an existing category.
func (t *testContext) theCategoryIsSelected(name string) error {
	var category model.CategoryModel
	if err := testDB.DbConn.Where("name = ?", name).First(&category).Error; err != nil {
		return fmt.Errorf("category %q: %w", name, err)
	}
	t.lastCategoryID = strconv.FormatUint(uint64(category.ID), 10)
	return nil
}

func (t *testContext) aTransactionExistsWithAmountInOn(amount, categoryName, date string) error {
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return err
	}

	var category model.CategoryModel
	if err := testDB.DbConn.Where("name = ?", categoryName).First(&category).Error; err != nil {
		return fmt.Errorf("category %q: %w", categoryName, err)
	}

	now := time.Now().UTC()
	transaction := &model.TransactionModel{
		Amount:     value,
		CategoryID: category.ID,
		IsIncome:   category.IsIncome,
		Date:       date,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := testDB.DbConn.Create(transaction).Error; err != nil {
		return err
	}
	t.lastTransactionID = strconv.FormatUint(uint64(transaction.ID), 10)
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{category_id}}", t.lastCategoryID)
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.lastTransactionID)
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, server.URL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
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

	t.response = &response{
		status:  resp.StatusCode,
		headers: resp.Header,
		raw:     bodyBytes,
	}

	var decoded any
	if err := json.Unmarshal(bodyBytes, &decoded); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = decoded

	// Remember created ids for {{category_id}} and {{transaction_id}}
	if object, ok := decoded.(map[string]any); ok {
		if id, ok := object["id"].(float64); ok {
			idStr := strconv.FormatFloat(id, 'f', 0, 64)
			if _, isCategory := object["is_default"]; isCategory {
				t.lastCategoryID = idStr
			} else if _, isTransaction := object["amount"]; isTransaction {
				t.lastTransactionID = idStr
			}
		}
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

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	switch t.response.body.(type) {
	case map[string]any, []any:
		return nil
	default:
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldHaveItems(quantity int) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	items, ok := t.response.body.([]any)
	if !ok {
		return fmt.Errorf("response is not a JSON array: %v", t.response.body)
	}
	if len(items) != quantity {
		return fmt.Errorf("expected %d items, got %d", quantity, len(items))
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldContain(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	actual := t.response.headers.Get(header)
	if !strings.Contains(actual, expected) {
		return fmt.Errorf("header '%s' expected to contain '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func (t *testContext) theResponseBodyShouldContain(expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	if !bytes.Contains(t.response.raw, []byte(expected)) {
		return fmt.Errorf("body does not contain '%s': %s", expected, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseBodyShouldStartWith(prefix string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	if !bytes.HasPrefix(t.response.raw, []byte(prefix)) {
		return fmt.Errorf("body does not start with '%s'", prefix)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := testDB.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := testDB.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

// getFieldValue walks a decoded JSON value along a dot separated path.
// Numeric segments index into arrays.
func getFieldValue(object any, dotSeparatedField string) any {
	field := object

	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i < 0 || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
