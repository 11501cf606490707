// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// =============================================================================
// TOASTS
// =============================================================================

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	// ToastKindStatus is an informational toast
	ToastKindStatus ToastKind = iota
	// ToastKindSuccess is a success toast
	ToastKindSuccess
	// ToastKindError is an error toast
	ToastKindError
)

// DefaultToastDuration is the auto-dismiss duration for status toasts.
const DefaultToastDuration = 4 * time.Second

// ErrorToastDuration is the auto-dismiss duration for error toasts.
const ErrorToastDuration = 8 * time.Second

// Toast is a non-blocking transient notification.
type Toast struct {
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the toast should be dismissed.
func (t Toast) IsExpired() bool {
	return time.Since(t.CreatedAt) >= t.Duration
}

// ToastExpiredMsg asks the owner to sweep expired toasts.
type ToastExpiredMsg struct{}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager holds the active toasts. Newest toasts render last.
type ToastManager struct {
	theme  *styles.Theme
	toasts []Toast
}

// NewToastManager creates an empty toast manager.
func NewToastManager(theme *styles.Theme) *ToastManager {
	return &ToastManager{theme: theme}
}

// Push adds a toast and returns the command that schedules its sweep.
func (m *ToastManager) Push(kind ToastKind, message string) tea.Cmd {
	duration := DefaultToastDuration
	if kind == ToastKindError {
		duration = ErrorToastDuration
	}

	m.toasts = append(m.toasts, Toast{
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	return tea.Tick(duration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{}
	})
}

// Info pushes an informational toast.
func (m *ToastManager) Info(message string) tea.Cmd {
	return m.Push(ToastKindStatus, message)
}

// Success pushes a success toast.
func (m *ToastManager) Success(message string) tea.Cmd {
	return m.Push(ToastKindSuccess, message)
}

// Error pushes an error toast.
func (m *ToastManager) Error(message string) tea.Cmd {
	return m.Push(ToastKindError, message)
}

// Sweep removes expired toasts.
func (m *ToastManager) Sweep() {
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.IsExpired() {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

// Active returns the number of live toasts.
func (m *ToastManager) Active() int {
	return len(m.toasts)
}

// View renders the active toasts, one per line.
func (m *ToastManager) View() string {
	if len(m.toasts) == 0 {
		return ""
	}

	out := ""
	for _, t := range m.toasts {
		var line string
		switch t.Kind {
		case ToastKindError:
			line = m.theme.ToastError.Render(styles.StatusIndicators.Error + " " + t.Message)
		case ToastKindSuccess:
			line = m.theme.ToastSuccess.Render(styles.StatusIndicators.Success + " " + t.Message)
		default:
			line = m.theme.ToastInfo.Render(styles.StatusIndicators.Info + " " + t.Message)
		}
		if out != "" {
			out += "\n"
		}
		out += line
	}
	return out
}
