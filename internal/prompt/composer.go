// Package prompt compiles the user's tab, style and scene selections plus
// free text into the single instruction string sent to the image backend.
// Composition is an ordered pipeline of pure stages over an accumulator;
// no stage does I/O and the same request always yields the same string.
package prompt

import (
	"errors"
	"strings"

	"github.com/archilab/renderstudio/internal/catalog"
	"github.com/archilab/renderstudio/internal/models"
)

// ErrEmptyRequest signals a request with nothing to work from: exterior tab
// with no text, no style, no scene and no images.
var ErrEmptyRequest = errors.New("empty generation request: select a style or enter a description")

// negativeSuffix is the fixed quality/artifact exclusion clause appended to
// every composed prompt.
const negativeSuffix = "low quality, low resolution, blurry, distorted, watermark, text, signature, bad composition, ugly, geometric imperfections, changing background, changing room layout, changing lighting, distortion"

// strictAnalysisMinLength is the free-text length above which a 2D-plan
// request is assumed to carry a prior plan analysis and switches the base
// template into the strict verbatim-instructions block.
const strictAnalysisMinLength = 50

// Request is an immutable snapshot of the selection state at dispatch time.
type Request struct {
	Tab           models.Tab
	RenderStyleID string

	// Tab-specific selections; at most one style family applies per tab.
	ArchStyleID     string
	SceneID         string
	RoomTypeID      string
	InteriorStyleID string
	InteriorMode    models.InteriorMode
	PlanStyleID     string

	FreeText    string
	EditCommand string

	HasSource    bool
	HasReference bool
}

// usesStrictAnalysis reports whether the base template embeds FreeText
// verbatim, in which case later stages must not repeat it.
func (r Request) usesStrictAnalysis() bool {
	return r.Tab == models.TabInterior &&
		r.InteriorMode == models.InteriorModeFrom2D &&
		r.HasSource &&
		len(r.FreeText) > strictAnalysisMinLength
}

// Validate rejects requests that carry nothing to generate from. It is
// called by the dispatcher before any credential or backend work.
func Validate(r Request) error {
	if r.Tab == models.TabExterior &&
		r.FreeText == "" && r.ArchStyleID == "" && r.SceneID == "" &&
		!r.HasSource && !r.HasReference {
		return ErrEmptyRequest
	}
	return nil
}

type stage func(b *strings.Builder, r Request)

var pipeline = []stage{
	baseTemplate,
	categoryDescriptors,
	freeTextDetails,
	renderStyle,
	sourceInstructions,
	negativeClause,
	imageRoles,
}

// Compose runs the full stage pipeline and returns the instruction string.
func Compose(r Request) string {
	var b strings.Builder
	for _, s := range pipeline {
		s(&b, r)
	}
	return b.String()
}

func baseTemplate(b *strings.Builder, r Request) {
	switch r.Tab {
	case models.TabInterior:
		switch {
		case r.InteriorMode == models.InteriorModeFrom2D && r.HasSource:
			b.WriteString("[ROLE: SENIOR ARCHITECTURAL VISUALIZER]\n")
			b.WriteString("TASK: Convert 2D Floor Plan to 3D Interior. 100% ACCURACY REQUIRED.\n")
			if r.usesStrictAnalysis() {
				b.WriteString("[STRICT VISUAL INSTRUCTIONS]:\n" + r.FreeText + "\n\n")
				b.WriteString("INSTRUCTION: The above text describes the EXACT layout found in the input image. You MUST follow it for furniture placement, lighting, and materials.\n")
			} else {
				b.WriteString("CHAIN OF THOUGHT PROCESS:\n")
				b.WriteString("1. SCAN INPUT: Identify the exact pixel coordinates of the Bed, Wardrobe, Nightstands, Door, and Windows.\n")
				b.WriteString("2. GEOMETRY LOCK: Create a rigid 3D bounding box for each furniture item found. DO NOT MOVE THEM. DO NOT ROTATE THEM. DO NOT RESIZE THEM.\n")
				b.WriteString("3. RENDER: Apply the requested style to these LOCKED coordinates.\n")
			}
			b.WriteString("OUTPUT REQUIREMENT: The final image must perfectly match the layout of the source plan. If the bed is on the left in the plan, it MUST be on the left in the render.\n")
		case r.InteriorMode == models.InteriorModeFrom3D && r.HasSource:
			b.WriteString("[TASK: RENDER 3D MODEL SCREENSHOT TO PHOTOREALISM]\n")
			b.WriteString("INPUT ANALYSIS: The input image is a raw 3D model screenshot (e.g., SketchUp, Revit, Rhino) or a white model.\n")
			b.WriteString("INSTRUCTION: Apply realistic materials, textures, and lighting to the EXISTING geometry. DO NOT change the structure. Turn the 'clay' or 'viewport' look into a high-end photograph. Keep the camera angle exactly the same.\n")
			b.WriteString("Strictly preserve the geometry of the input image. Analyze the position of every furniture piece and keep it exactly where it is. Apply realistic textures and lighting only.\n")
		default:
			b.WriteString("Generate a high quality interior design image. ")
		}
	case models.TabPlan:
		b.WriteString("Generate a high quality architectural floor plan. ")
	default:
		b.WriteString("Generate a high quality image of exterior view. ")
	}
}

func categoryDescriptors(b *strings.Builder, r Request) {
	switch r.Tab {
	case models.TabInterior:
		if p := catalog.RoomTypePrompt(r.RoomTypeID); p != "" {
			b.WriteString(p + ". ")
		}
		if p := catalog.InteriorStylePrompt(r.InteriorStyleID); p != "" {
			b.WriteString(p + ". ")
		}
	case models.TabPlan:
		if p := catalog.PlanStylePrompt(r.PlanStyleID); p != "" {
			b.WriteString(p + ". ")
		}
	default:
		if p := catalog.ExteriorScenePrompt(r.SceneID); p != "" {
			b.WriteString(p + " ")
		}
		if p := catalog.ArchStylePrompt(r.ArchStyleID); p != "" {
			b.WriteString("Architecture Style: " + p + ". ")
		}
	}
}

func freeTextDetails(b *strings.Builder, r Request) {
	if r.FreeText == "" || r.usesStrictAnalysis() {
		return
	}
	if r.Tab == models.TabPlan {
		b.WriteString("Description: " + r.FreeText + ". ")
		return
	}
	b.WriteString("Additional Details: " + r.FreeText + ". ")
}

func renderStyle(b *strings.Builder, r Request) {
	b.WriteString("Render Style: " + catalog.RenderStylePrompt(r.RenderStyleID) + ". ")
}

func sourceInstructions(b *strings.Builder, r Request) {
	if !r.HasSource {
		if r.EditCommand != "" {
			b.WriteString("Additional details: " + r.EditCommand + ". ")
		}
		return
	}

	switch {
	case r.Tab == models.TabPlan:
		if r.PlanStyleID == catalog.PlanStyleStrictIsometric {
			b.WriteString(" [Instruction]: STRICT CONVERSION. Convert this 2D plan into a 3D Isometric view. You MUST preserve the exact wall layout, proportions, and furniture placement of the source image. Do not change the design. Only change the perspective to 3D Isometric.")
		} else {
			b.WriteString(" [Instruction]: Analyze this image (sketch or plan). Redraw it as a high-quality floor plan in the specified style, maintaining the layout but enhancing clarity and aesthetics.")
		}
	case r.Tab == models.TabInterior && r.InteriorMode != models.InteriorModeStandard:
		// The from_2d/from_3d base templates already carry the strict
		// source-handling instructions.
	case r.EditCommand != "":
		b.WriteString("\n[CRITICAL INSTRUCTION: INPAINTING MODE]")
		b.WriteString("\nUSER COMMAND: \"" + r.EditCommand + "\"")
		b.WriteString("\n\nRULES:")
		b.WriteString("\n1. FROZEN BACKGROUND: Do NOT change the room layout, walls, floor, ceiling, or existing furniture. The scene must remain EXACTLY the same.")
		b.WriteString("\n2. INSERTION ONLY: Only add/modify the object specified in the command.")
		b.WriteString("\n3. STYLE MATCHING: The new object must match the lighting, perspective, and style of the original image.")
		b.WriteString("\n4. NO RE-IMAGINING: This is an EDIT, not a new generation.")
	default:
		b.WriteString(" [STRICT CONSTRAINT]: Preserve the original image style, camera angle, composition, and lighting exactly. Do not change the overall look. ")
		if r.FreeText != "" && !strings.Contains(b.String(), r.FreeText) {
			b.WriteString("ACTION: Edit based on: \"" + r.FreeText + "\". Keep everything else exactly the same. ")
		}
	}
}

func negativeClause(b *strings.Builder, r Request) {
	b.WriteString("Exclude: " + negativeSuffix + ".")
}

func imageRoles(b *strings.Builder, r Request) {
	switch {
	case r.HasSource && r.HasReference:
		b.WriteString(" [Instruction]: Use the first image as the main structural base. Use the second image as a reference for style. Blend the aesthetic of the second image into the first image.")
	case r.HasSource:
		if r.Tab == models.TabPlan {
			return
		}
		if r.Tab == models.TabInterior && r.InteriorMode != models.InteriorModeStandard {
			return
		}
		b.WriteString(" [Instruction]: You must use the provided image as the strict reference for composition. DO NOT change the style. DO NOT change the overall structure.")
	case r.HasReference:
		b.WriteString(" [Instruction]: Use this image as a style reference.")
	}
}
