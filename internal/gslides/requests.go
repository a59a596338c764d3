// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gslides renders slide decks to Google Slides. Request building is
// kept separate from API plumbing so the exact formatting is testable
// offline. See docs/ARCHITECTURE.md § Slides.
package gslides

import (
	"fmt"
	"strings"

	"google.golang.org/api/slides/v1"

	"github.com/pdiddy/lyricaster/pkg/types"
)

// Slide geometry in EMU (914400 EMU = 1 inch), standard 16:9.
const (
	SlideWidth  = 9144000 // 10 in
	SlideHeight = 5143500 // 5.625 in

	titleHeight  = 800000
	titleY       = 300000
	bodyY        = 1000000
	bodyHeight   = 3700000
	footerHeight = 400000

	halfInch    = 457200
	quarterInch = 228600
)

const (
	fontFamily   = "Calibri"
	fontSize     = 40
	footerSize   = 20
)

// accentColor is #4a86e8, used for titles and footers.
var accentColor = &slides.RgbColor{Red: 0.29, Green: 0.525, Blue: 0.91}

var whiteColor = &slides.RgbColor{Red: 1, Green: 1, Blue: 1}

// blackColor needs ForceSendFields: an all-zero RGB struct would otherwise
// serialize as an empty object.
var blackColor = &slides.RgbColor{ForceSendFields: []string{"Red", "Green", "Blue"}}

// BuildRequests converts a flat slide run into the batchUpdate requests that
// realize it: black background, blue underlined 40pt Calibri title, white
// centered 40pt body, and a 20pt italic right-aligned footer. Title-only
// slides get their title vertically centered.
func BuildRequests(deck []types.Slide) []*slides.Request {
	var reqs []*slides.Request
	for i, s := range deck {
		slideID := fmt.Sprintf("slide_%d", i)

		reqs = append(reqs, &slides.Request{
			CreateSlide: &slides.CreateSlideRequest{
				ObjectId:       slideID,
				InsertionIndex: int64(i),
				SlideLayoutReference: &slides.LayoutReference{
					PredefinedLayout: "BLANK",
				},
				// Index 0 must reach the wire or the slide lands at the end.
				ForceSendFields: []string{"InsertionIndex"},
			},
		})

		reqs = append(reqs, &slides.Request{
			UpdatePageProperties: &slides.UpdatePagePropertiesRequest{
				ObjectId: slideID,
				PageProperties: &slides.PageProperties{
					PageBackgroundFill: &slides.PageBackgroundFill{
						SolidFill: &slides.SolidFill{
							Color: &slides.OpaqueColor{RgbColor: blackColor},
						},
					},
				},
				Fields: "pageBackgroundFill",
			},
		})

		if title := strings.TrimSpace(s.Title); title != "" {
			y := int64(titleY)
			if s.IsTitleOnly() {
				y = (SlideHeight - titleHeight) / 2
			}
			id := fmt.Sprintf("title_%d", i)
			reqs = append(reqs,
				textBox(id, slideID, SlideWidth-2*halfInch, titleHeight, halfInch, y),
				insertText(id, strings.ToUpper(title)),
				&slides.Request{
					UpdateTextStyle: &slides.UpdateTextStyleRequest{
						ObjectId: id,
						Style: &slides.TextStyle{
							FontFamily:      fontFamily,
							FontSize:        &slides.Dimension{Magnitude: fontSize, Unit: "PT"},
							ForegroundColor: &slides.OptionalColor{OpaqueColor: &slides.OpaqueColor{RgbColor: accentColor}},
							Underline:       true,
						},
						Fields: "fontFamily,fontSize,foregroundColor,underline,bold",
					},
				},
				align(id, "CENTER"),
			)
		}

		if body := strings.TrimSpace(s.Body); body != "" {
			id := fmt.Sprintf("body_%d", i)
			reqs = append(reqs,
				textBox(id, slideID, SlideWidth-2*quarterInch, bodyHeight, quarterInch, bodyY),
				insertText(id, s.Body),
				&slides.Request{
					UpdateTextStyle: &slides.UpdateTextStyleRequest{
						ObjectId: id,
						Style: &slides.TextStyle{
							FontFamily:      fontFamily,
							FontSize:        &slides.Dimension{Magnitude: fontSize, Unit: "PT"},
							ForegroundColor: &slides.OptionalColor{OpaqueColor: &slides.OpaqueColor{RgbColor: whiteColor}},
						},
						Fields: "fontFamily,fontSize,foregroundColor,bold",
					},
				},
				align(id, "CENTER"),
			)
		}

		if footer := strings.TrimSpace(s.Footer); footer != "" {
			id := fmt.Sprintf("footer_%d", i)
			reqs = append(reqs,
				textBox(id, slideID, SlideWidth-2*halfInch, footerHeight, halfInch, SlideHeight-500000),
				insertText(id, footer),
				&slides.Request{
					UpdateTextStyle: &slides.UpdateTextStyleRequest{
						ObjectId: id,
						Style: &slides.TextStyle{
							FontFamily:      fontFamily,
							FontSize:        &slides.Dimension{Magnitude: footerSize, Unit: "PT"},
							ForegroundColor: &slides.OptionalColor{OpaqueColor: &slides.OpaqueColor{RgbColor: accentColor}},
							Italic:          true,
						},
						Fields: "fontFamily,fontSize,foregroundColor,italic",
					},
				},
				align(id, "END"),
			)
		}
	}
	return reqs
}

func textBox(id, slideID string, width, height, x, y int64) *slides.Request {
	return &slides.Request{
		CreateShape: &slides.CreateShapeRequest{
			ObjectId:  id,
			ShapeType: "TEXT_BOX",
			ElementProperties: &slides.PageElementProperties{
				PageObjectId: slideID,
				Size: &slides.Size{
					Width:  &slides.Dimension{Magnitude: float64(width), Unit: "EMU"},
					Height: &slides.Dimension{Magnitude: float64(height), Unit: "EMU"},
				},
				Transform: &slides.AffineTransform{
					ScaleX:     1,
					ScaleY:     1,
					TranslateX: float64(x),
					TranslateY: float64(y),
					Unit:       "EMU",
				},
			},
		},
	}
}

func insertText(id, text string) *slides.Request {
	return &slides.Request{
		InsertText: &slides.InsertTextRequest{ObjectId: id, Text: text},
	}
}

func align(id, alignment string) *slides.Request {
	return &slides.Request{
		UpdateParagraphStyle: &slides.UpdateParagraphStyleRequest{
			ObjectId: id,
			Style:    &slides.ParagraphStyle{Alignment: alignment},
			Fields:   "alignment",
		},
	}
}
