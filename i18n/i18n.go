package i18n

import (
	"fmt"
	"sync"
)

// Message keys understood by the launcher UI. A catalog file may carry any
// subset; missing entries render as the raw key.
const (
	KeyFormTitle          = "FormTitle"
	KeyButtonText         = "buttonText"
	KeyHelpLink           = "HelpLink"
	KeyLabelAPI           = "labelAPI"
	KeyTextBox            = "TextBox"
	KeyEmptyTokenError    = "EmptyTokenError"
	KeyInvalidFormatError = "InvalidFormatError"
	KeyInvalidTokenError  = "InvalidTokenError"
	KeyPyNotFoundError    = "PyNotFoundError"
	KeyBatNotFoundError   = "BatNotFoundError"
	KeyBatRunError        = "BatRunError"
	KeyErrorTitle         = "ErrorTitle"
	KeyLanguageMissing    = "LanguageMissing"
)

// MessageKeys lists every key the UI renders, in form order.
var MessageKeys = []string{
	KeyFormTitle,
	KeyButtonText,
	KeyHelpLink,
	KeyLabelAPI,
	KeyTextBox,
	KeyEmptyTokenError,
	KeyInvalidFormatError,
	KeyInvalidTokenError,
	KeyPyNotFoundError,
	KeyBatNotFoundError,
	KeyBatRunError,
	KeyErrorTitle,
	KeyLanguageMissing,
}

// Translator provides translation functionality against the active catalog.
// One catalog is active at a time and is replaced wholesale on language
// switch. A nil catalog is legal: every lookup falls back to the raw key.
type Translator struct {
	catalog *Catalog
	mu      sync.RWMutex
}

var (
	defaultTranslator *Translator
	once              sync.Once
)

// GetTranslator returns the shared translator instance.
func GetTranslator() *Translator {
	once.Do(func() {
		defaultTranslator = &Translator{}
	})
	return defaultTranslator
}

// SetCatalog replaces the active catalog. nil switches to raw-key fallback.
func (t *Translator) SetCatalog(c *Catalog) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.catalog = c
}

// CatalogName returns the active catalog's language name, or "" without one.
func (t *Translator) CatalogName() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.catalog == nil {
		return ""
	}
	return t.catalog.Name
}

// T translates a key with optional parameters. Translation is total: a
// missing catalog or entry yields the key itself, never an error.
func (t *Translator) T(key string, params ...interface{}) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	text := key
	if t.catalog != nil {
		if v, ok := t.catalog.Lookup(key); ok {
			text = v
		}
	}

	if len(params) > 0 {
		return fmt.Sprintf(text, params...)
	}
	return text
}

// Snapshot returns every UI message key resolved against the active catalog,
// ready for a full re-render of the form.
func (t *Translator) Snapshot() map[string]string {
	out := make(map[string]string, len(MessageKeys))
	for _, key := range MessageKeys {
		out[key] = t.T(key)
	}
	return out
}

// T is a convenience function for translation.
func T(key string, params ...interface{}) string {
	return GetTranslator().T(key, params...)
}

// SetCatalog is a convenience function to swap the active catalog.
func SetCatalog(c *Catalog) {
	GetTranslator().SetCatalog(c)
}
