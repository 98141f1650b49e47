// Package http provides HTTP server and handler implementations.
//
// This file implements the Builder Pattern for constructing HTMX responses.
// It provides a type-safe, fluent API for building HX-Trigger headers,
// out-of-band region swaps and consistent response formatting.

package http

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"

	"familyspend/internal/core"
	"familyspend/internal/i18n"
	"familyspend/internal/notify"
	"familyspend/internal/render"
	"familyspend/internal/state"
)

// HTMXResponseBuilder provides a fluent API for building HTMX responses.
// It encapsulates the construction of HX-Trigger headers and response bodies.
type HTMXResponseBuilder struct {
	triggers   map[string]any
	statusCode int
	body       []byte
	headers    map[string]string
}

// NewHTMXResponse creates a new response builder with default 200 status.
func NewHTMXResponse() *HTMXResponseBuilder {
	return &HTMXResponseBuilder{
		triggers:   make(map[string]any),
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code for the response.
func (b *HTMXResponseBuilder) Status(code int) *HTMXResponseBuilder {
	b.statusCode = code
	return b
}

// Trigger adds a named trigger with optional data to the HX-Trigger header.
func (b *HTMXResponseBuilder) Trigger(name string, data any) *HTMXResponseBuilder {
	b.triggers[name] = data
	return b
}

// TriggerViewChanged tells the page which view section to show.
func (b *HTMXResponseBuilder) TriggerViewChanged(v state.View) *HTMXResponseBuilder {
	return b.Trigger("view-changed", map[string]string{"view": string(v)})
}

// TriggerThemeChanged tells the page to switch the body theme class.
func (b *HTMXResponseBuilder) TriggerThemeChanged(t core.Theme) *HTMXResponseBuilder {
	return b.Trigger("theme-changed", map[string]string{"theme": string(t)})
}

// TriggerLanguageChanged tells the page to update its lang attribute.
func (b *HTMXResponseBuilder) TriggerLanguageChanged(l i18n.Language) *HTMXResponseBuilder {
	return b.Trigger("language-changed", map[string]string{"language": string(l)})
}

// NotificationType represents the type of notification to display.
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationInfo    NotificationType = "info"
)

const (
	successDuration = 3000
	errorDuration   = 5000
)

// Notification is one toast as the page script expects it.
type Notification struct {
	Type     NotificationType `json:"type"`
	Message  string           `json:"message"`
	Duration int              `json:"duration"`
}

// TriggerNotification adds a show-notification trigger with the specified parameters.
func (b *HTMXResponseBuilder) TriggerNotification(notifType NotificationType, message string, durationMs int) *HTMXResponseBuilder {
	return b.Trigger("show-notification", Notification{Type: notifType, Message: message, Duration: durationMs})
}

// TriggerSuccessNotification is a convenience method for success notifications.
func (b *HTMXResponseBuilder) TriggerSuccessNotification(message string) *HTMXResponseBuilder {
	return b.TriggerNotification(NotificationSuccess, message, successDuration)
}

// TriggerErrorNotification is a convenience method for error notifications.
func (b *HTMXResponseBuilder) TriggerErrorNotification(message string) *HTMXResponseBuilder {
	return b.TriggerNotification(NotificationError, message, errorDuration)
}

// TriggerToasts translates recorded toasts into lang. One toast is sent as an
// object, several as a list in the order they were raised.
func (b *HTMXResponseBuilder) TriggerToasts(lang i18n.Language, toasts []notify.Toast) *HTMXResponseBuilder {
	if len(toasts) == 0 {
		return b
	}
	list := make([]Notification, len(toasts))
	for i, t := range toasts {
		list[i] = Notification{Type: NotificationInfo, Message: i18n.Translate(lang, t.Key), Duration: successDuration}
		switch t.Level {
		case notify.Success:
			list[i].Type = NotificationSuccess
		case notify.Error:
			list[i].Type = NotificationError
			list[i].Duration = errorDuration
		}
	}
	if len(list) == 1 {
		return b.Trigger("show-notification", list[0])
	}
	return b.Trigger("show-notification", list)
}

// Swap sets the body to out-of-band swaps of every region painted into f,
// in paint order.
func (b *HTMXResponseBuilder) Swap(f *render.Frame) *HTMXResponseBuilder {
	var buf bytes.Buffer
	for _, region := range f.Painted() {
		html, _ := f.Get(region)
		buf.WriteString(`<div id="`)
		buf.WriteString(template.HTMLEscapeString(string(region)))
		buf.WriteString(`" hx-swap-oob="innerHTML">`)
		buf.WriteString(string(html))
		buf.WriteString("</div>\n")
	}
	b.headers["Content-Type"] = "text/html; charset=utf-8"
	b.body = buf.Bytes()
	return b
}

// Header adds a custom header to the response.
func (b *HTMXResponseBuilder) Header(name, value string) *HTMXResponseBuilder {
	b.headers[name] = value
	return b
}

// Body sets the response body as bytes.
func (b *HTMXResponseBuilder) Body(content []byte) *HTMXResponseBuilder {
	b.body = content
	return b
}

// BodyHTML sets the response body as HTML content.
func (b *HTMXResponseBuilder) BodyHTML(html string) *HTMXResponseBuilder {
	b.headers["Content-Type"] = "text/html; charset=utf-8"
	b.body = []byte(html)
	return b
}

// Write sends the built response to the http.ResponseWriter.
func (b *HTMXResponseBuilder) Write(w http.ResponseWriter) {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}

	if len(b.triggers) > 0 {
		triggerJSON, err := json.Marshal(b.triggers)
		if err == nil {
			w.Header().Set("HX-Trigger", string(triggerJSON))
		}
	}

	w.WriteHeader(b.statusCode)
	if len(b.body) > 0 {
		_, _ = w.Write(b.body)
	}
}

// ErrorResponse creates a standard error response with HTML formatting.
// The message is HTML-escaped for safety.
func ErrorResponse(statusCode int, message string) *HTMXResponseBuilder {
	escapedMsg := template.HTMLEscapeString(message)
	return NewHTMXResponse().
		Status(statusCode).
		BodyHTML(`<div class="error">` + escapedMsg + `</div>`)
}

// BadRequestError creates a 400 Bad Request error response.
func BadRequestError(message string) *HTMXResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, message)
}

// NotFoundError creates a 404 Not Found error response.
func NotFoundError(message string) *HTMXResponseBuilder {
	return ErrorResponse(http.StatusNotFound, message)
}

// InternalServerError creates a 500 Internal Server Error response.
func InternalServerError(message string) *HTMXResponseBuilder {
	return ErrorResponse(http.StatusInternalServerError, message)
}
