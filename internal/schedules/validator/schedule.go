package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"agenda/pkg/logger"
	"agenda/pkg/model"
	"agenda/pkg/scheduling"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type ScheduleValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewScheduleValidator(log *logger.Logger) *ScheduleValidator {
	v := validator.New()

	if err := v.RegisterValidation("valid_date", validateDate); err != nil {
		log.Fatal("Failed to register 'valid_date' validator", "error", err)
	}
	if err := v.RegisterValidation("valid_clock", validateClock); err != nil {
		log.Fatal("Failed to register 'valid_clock' validator", "error", err)
	}

	log.Info("Schedule validator initialized successfully")

	return &ScheduleValidator{
		validate: v,
		logger:   log,
	}
}

func validateDate(fl validator.FieldLevel) bool {
	date := fl.Field().String()
	if len(date) != len(scheduling.DateLayout) {
		return false
	}
	_, err := time.Parse(scheduling.DateLayout, date)
	return err == nil
}

func validateClock(fl validator.FieldLevel) bool {
	return scheduling.ValidClock(fl.Field().String())
}

func (v *ScheduleValidator) ValidateRecurring(req *model.RecurringScheduleRequest) error {
	if err := v.validateStruct(req); err != nil {
		return err
	}

	var errs ValidationErrors
	if req.EndDate < req.StartDate {
		errs = append(errs, ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}
	for dow := 0; dow < 7; dow++ {
		key := fmt.Sprintf("%d", dow)
		if _, ok := req.WeekSchedule[key]; !ok {
			errs = append(errs, ValidationError{
				Field:   "week_schedule",
				Message: fmt.Sprintf("missing day key %q; closed days must be declared with open=false", key),
			})
		}
	}
	for day, cfg := range req.WeekSchedule {
		if day < "0" || day > "6" || len(day) != 1 {
			errs = append(errs, ValidationError{
				Field:   "week_schedule",
				Message: fmt.Sprintf("day key must be \"0\" (Sunday) through \"6\" (Saturday), got %q", day),
			})
			continue
		}
		if cfg.Open {
			if cfg.OpenTime == "" || cfg.CloseTime == "" {
				errs = append(errs, ValidationError{
					Field:   "week_schedule",
					Message: fmt.Sprintf("open day %s requires both open_time and close_time", day),
				})
			} else if cfg.CloseTime <= cfg.OpenTime {
				errs = append(errs, ValidationError{
					Field:   "week_schedule",
					Message: fmt.Sprintf("day %s close_time must be after open_time", day),
				})
			}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *ScheduleValidator) ValidateException(req *model.ExceptionScheduleRequest) error {
	if err := v.validateStruct(req); err != nil {
		return err
	}

	var errs ValidationErrors
	if !req.Closed {
		if req.OpenTime == "" || req.CloseTime == "" {
			errs = append(errs, ValidationError{
				Field:   "open_time",
				Message: "an open exception requires both open_time and close_time",
			})
		} else if req.CloseTime <= req.OpenTime {
			errs = append(errs, ValidationError{
				Field:   "close_time",
				Message: "close_time must be after open_time",
			})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *ScheduleValidator) ValidateConflictCheck(req *model.ConflictCheckRequest) error {
	if err := v.validateStruct(req); err != nil {
		return err
	}

	var errs ValidationErrors
	hasRange := req.StartDate != "" || req.EndDate != ""
	if hasRange && (req.StartDate == "" || req.EndDate == "") {
		errs = append(errs, ValidationError{
			Field:   "start_date",
			Message: "start_date and end_date must be provided together",
		})
	}
	if !hasRange && len(req.Dates) == 0 {
		errs = append(errs, ValidationError{
			Field:   "dates",
			Message: "either a start_date/end_date range or a dates list is required",
		})
	}
	if req.StartDate != "" && req.EndDate != "" && req.EndDate < req.StartDate {
		errs = append(errs, ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *ScheduleValidator) validateStruct(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *ScheduleValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must have at least %s element(s)", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must have at most %s element(s)", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid object ID", err.Field())
		case "valid_date":
			message = fmt.Sprintf("%s must be a calendar date in YYYY-MM-DD format", err.Field())
		case "valid_clock":
			message = fmt.Sprintf("%s must be a time of day in HH:MM 24-hour format", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
