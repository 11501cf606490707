// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the ragchat TUI.

This package defines the color palette and the runtime Theme used
throughout the application. All colors use Lip Gloss AdaptiveColor for
automatic light/dark terminal detection.

# Color System (colors.go)

## Primary Accent Colors

  - Purple - Primary accent for assistant messages and selections
  - Cyan - Brand color for info and user highlights
  - Emerald - Success states and connected indicator
  - Amber - Warnings and in-progress query states
  - Rose - Errors and connectivity loss

## Surface Colors

Layered surface system for depth:

	Surface       - Elevated elements
	SurfaceDim    - Subtle backgrounds (status bar)
	SurfaceBright - Highlighted rows (selected conversation)
	Overlay       - Toast overlays

## Text Colors

	TextPrimary   - Main content text
	TextSecondary - Supporting text
	TextMuted     - De-emphasized text (previews, shortcuts)

## Status Indicators

Text indicators for status lines and toasts:

	StatusIndicators.Success - [OK]
	StatusIndicators.Error   - [X]
	StatusIndicators.Warning - [!]
	StatusIndicators.Info    - [i]

# Theme System (theme.go)

The Theme struct provides runtime color adaptation:

	theme := styles.NewTheme()
	if theme.IsDark {
		// Dark terminal detected
	}
	if theme.HasTrueColor {
		// Terminal supports 16M colors
	}

Every component receives the Theme at construction and reads its styles
rather than building lipgloss styles ad hoc.
*/
package styles
