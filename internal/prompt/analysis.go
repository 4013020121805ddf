package prompt

import "github.com/archilab/renderstudio/internal/catalog"

// AnalysisInstruction builds the vision prompt used to read a 2D floor plan
// into a precise textual layout description. The resulting text is fed back
// into the free-text field, where Compose picks it up as strict visual
// instructions for the from_2d mode.
func AnalysisInstruction(interiorStyleID string) string {
	style := catalog.InteriorStyleLabel(interiorStyleID)
	if style == "" {
		style = "Modern Luxury"
	}

	return `[ROLE: Expert Architectural Visualizer & Prompt Engineer]
[TASK: Analyze 2D Floor Plan -> Create 3D Render Prompt]

Analyze the uploaded floor plan image strictly with high precision regarding architectural symbols.

1. **Architectural Symbols Analysis (CRITICAL)**:
   - **Windows vs Doors**: You must distinguish these carefully.
     - **Swing Door**: Look for a quarter-circle arc indicating the swing path.
     - **Window**: Look for a rectangle inside the wall thickness or a simple line closing a gap. If there is NO arc, it is likely a Window.
     - **Sliding Door**: Look for two overlapping lines or arrows, usually leading to a balcony or outside.

2. **Layout & Spatial Mapping**:
   - Identify the main entrance.
   - Locate key furniture: Bed, Wardrobe, Desk/Work Zone, Sofa.
   - **Relative Positions**: Describe elements relative to each other (e.g., "Next to the work zone on the left is a large sliding door", "Opposite the bed is a TV console").

3. **Materials & Style**:
   - Focus on the overall style '` + style + `'.
   - Only use specific codes (like F1/C1) if they are clearly legible; otherwise, infer premium materials suitable for the style (e.g., Wooden floor, Gypsum ceiling).

4. **Lighting**:
   - Explicitly identify the main source of natural light (usually the sliding door or large window).

[OUTPUT FORMAT]:
Write a single, highly detailed English prompt for an AI Image Generator.
- Start directly with the scene description: "Eye-level view of a [Style] [Room Type]..."
- Describe the position of every element precisely (Right wall, Left wall, Top/Bottom).
- Ensure Windows and Doors are correctly described based on the visual symbols defined above.
- End with: "8k resolution, photorealistic, cinematic lighting".
- Do not include introductory text. Just output the raw prompt.`
}
