package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/iPad7/gantt-4team/internal/adapter/http/dto"
	"github.com/iPad7/gantt-4team/internal/core/domain"
)

var taskUpdateFields = []string{
	"title",
	"description",
	"start_date",
	"end_date",
	"parent_task_id",
	"status",
	"progress",
	"assigned_to",
}

// DecodePayload unmarshals body into dst and also returns the raw top-level
// fields, so callers can tell an absent field from an explicit null. Type
// mismatches come back as a ValidationError naming the field.
func DecodePayload(body []byte, dst any) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, domain.NewValidationError("payload", "must be a JSON object")
	}

	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, domain.NewValidationError(typeErr.Field, "has the wrong type")
		}
		return nil, domain.NewValidationError("payload", "must be a JSON object")
	}

	return raw, nil
}

func BuildCreateTaskInput(req dto.CreateTaskRequest, raw map[string]json.RawMessage) (domain.CreateTaskInput, error) {
	for _, field := range []string{"title", "status", "progress", "start_date", "end_date"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.CreateTaskInput{}, domain.NewValidationError(field, "must not be null")
		}
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, domain.NewValidationError("title", "is required")
	}

	startDate, err := requiredDate("start_date", req.StartDate)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}
	endDate, err := requiredDate("end_date", req.EndDate)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	status := domain.TaskStatusNotStarted
	if req.Status != nil {
		status, err = parseStatus(*req.Status)
		if err != nil {
			return domain.CreateTaskInput{}, err
		}
	}

	progress := 0
	if req.Progress != nil {
		progress = *req.Progress
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	if req.ParentTaskID != nil && *req.ParentTaskID == 0 {
		return domain.CreateTaskInput{}, domain.NewValidationError("parent_task_id", "must be a positive id")
	}

	return domain.CreateTaskInput{
		Title:        title,
		Description:  description,
		StartDate:    startDate,
		EndDate:      endDate,
		ParentTaskID: req.ParentTaskID,
		Status:       status,
		Progress:     progress,
		AssignedTo:   req.AssignedTo,
	}, nil
}

func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if !hasTaskUpdateFields(raw) {
		return domain.UpdateTaskInput{}, domain.NewValidationError("payload", "contains no task field")
	}

	for _, field := range []string{"title", "status", "progress", "start_date", "end_date"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.UpdateTaskInput{}, domain.NewValidationError(field, "must not be null")
		}
	}

	input := domain.UpdateTaskInput{
		Description: req.Description,
		Progress:    req.Progress,
	}

	if req.Title != nil {
		value := strings.TrimSpace(*req.Title)
		if value == "" {
			return domain.UpdateTaskInput{}, domain.NewValidationError("title", "must not be empty")
		}
		input.Title = &value
	}

	if req.StartDate != nil {
		value, err := parseDate("start_date", *req.StartDate)
		if err != nil {
			return domain.UpdateTaskInput{}, err
		}
		input.StartDate = &value
	}

	if req.EndDate != nil {
		value, err := parseDate("end_date", *req.EndDate)
		if err != nil {
			return domain.UpdateTaskInput{}, err
		}
		input.EndDate = &value
	}

	if req.Status != nil {
		value, err := parseStatus(*req.Status)
		if err != nil {
			return domain.UpdateTaskInput{}, err
		}
		input.Status = &value
	}

	if hasJSONField(raw, "parent_task_id") {
		if req.ParentTaskID != nil && *req.ParentTaskID == 0 {
			return domain.UpdateTaskInput{}, domain.NewValidationError("parent_task_id", "must be a positive id")
		}
		input.ParentTaskID = req.ParentTaskID
		input.ParentTaskIDSet = true
	}

	if hasJSONField(raw, "assigned_to") {
		input.AssignedTo = req.AssignedTo
		input.AssignedToSet = true
	}

	return input, nil
}

func requiredDate(field string, value *string) (time.Time, error) {
	if value == nil {
		return time.Time{}, domain.NewValidationError(field, "is required")
	}
	return parseDate(field, *value)
}

func parseDate(field, value string) (time.Time, error) {
	parsed, err := domain.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "must be a YYYY-MM-DD date")
	}
	return parsed, nil
}

func parseStatus(value string) (domain.TaskStatus, error) {
	status := domain.TaskStatus(value)
	if !status.Valid() {
		return "", domain.NewValidationError("status", "is not a known status")
	}
	return status, nil
}

func hasTaskUpdateFields(raw map[string]json.RawMessage) bool {
	for _, field := range taskUpdateFields {
		if hasJSONField(raw, field) {
			return true
		}
	}
	return false
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
