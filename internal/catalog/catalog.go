// Package catalog holds the id-addressed descriptor tables behind the
// selection widgets: room types, interior styles, plan styles, exterior
// scenes, architecture styles and render styles. Lookups by unknown or
// empty id resolve to nothing; the render style is the only one with a
// hard fallback (photorealistic).
package catalog

type NamedOption struct {
	ID    string
	Label string
}

type Entry struct {
	Label  string
	Prompt string
}

const renderStyleFallback = "photo"

var roomTypes = map[string]Entry{
	"living":   {Label: "Living Room", Prompt: "Interior design of a living room, comfortable sofa arrangement, coffee table, TV wall unit, ambient lighting, cozy and inviting atmosphere"},
	"bedroom":  {Label: "Bedroom", Prompt: "Interior design of a master bedroom, king size bed with premium bedding, bedside tables, wardrobe, soft lighting, relaxing sanctuary vibe"},
	"kitchen":  {Label: "Kitchen", Prompt: "Interior design of a kitchen, dining area integration, counter bar, refrigerator, built-in cabinets, clean countertops, functional layout"},
	"bathroom": {Label: "Bathroom", Prompt: "Interior design of a bathroom, bathtub, separate shower zone, vanity mirror with lighting, sanitary ware, clean tiles, hygienic look"},
}

var roomTypeOrder = []string{"living", "bedroom", "kitchen", "bathroom"}

var interiorStyles = map[string]Entry{
	"modern":       {Label: "Modern", Prompt: "Modern style, sleek design, clean lines, neutral color palette, functional furniture, polished finishes"},
	"contemporary": {Label: "Contemporary", Prompt: "Contemporary style, current trends, sophisticated textures, curved lines, mix of materials, artistic touch"},
	"minimal":      {Label: "Minimal", Prompt: "Minimalist style, simplicity, clutter-free, monochromatic colors, open space, functional design, zen atmosphere"},
	"tropical":     {Label: "Tropical", Prompt: "Tropical style, natural materials, wood textures, indoor plants, airy atmosphere, connection to nature, resort-like feel"},
	"classic":      {Label: "Classic", Prompt: "Classic luxury style, elegant moldings, rich fabrics, chandelier, symmetrical layout, timeless aesthetic, sophisticated"},
	"resort":       {Label: "Resort", Prompt: "Luxury resort style, vacation vibe, spacious, natural light, premium materials, relaxing and calm environment"},
}

var interiorStyleOrder = []string{"modern", "contemporary", "minimal", "tropical", "classic", "resort"}

var planStyles = map[string]Entry{
	"iso_structure":    {Label: "Iso (Strict Layout)", Prompt: "3D Isometric floor plan view. Convert the 2D layout into 3D. Clean architectural model style. White walls, soft shadows. High angle view showing the layout depth. Strictly preserve wall positions."},
	"blueprint":        {Label: "Blueprint", Prompt: "Architectural blueprint style, white technical lines on blue background, precise measurements, clear lighting direction casting soft shadows to indicate depth"},
	"neon":             {Label: "Neon", Prompt: "Neon cyberpunk style floor plan, glowing lines on dark background, high contrast, dramatic lighting effects with distinct cast shadows"},
	"isometric":        {Label: "Iso Blue", Prompt: "Isometric floor plan, glowing blue structural lines, dark background, bokeh effect (blurred background), depth of field, high contrast, futuristic architectural style."},
	"oblique":          {Label: "Clay 3D", Prompt: "3D clay render style floor plan, isometric oblique view, soft rounded edges, matte finish, cute and playful miniature diorama aesthetic. Use a monochromatic single-tone color palette (shades of white, cream, or soft beige) for the entire structure and furniture. No colorful elements. Soft global illumination, strong ambient occlusion, clean and minimal toy-like appearance."},
	"wood_model":       {Label: "Wood Model", Prompt: "Isometric view made of light wood and matte white materials, placed on construction blueprints spread on a table. Contains miniature furniture details such as kitchen counters, wooden chairs, and gray sofas. Natural light shines through giving a soft and realistic feel. Shallow depth of field makes the background and other components slightly blurred to emphasize the focus on the room model."},
	"blueprint_grunge": {Label: "Blueprint Grunge", Prompt: "Architectural floor plan, top-down view, white lines on dark blue grunge paper texture background, blueprint style, thick walls casting drop shadows for depth, detailed furniture layout including bedroom kitchen and garage, sketched white outline trees surrounding, high contrast, aesthetic architectural presentation, 2D graphic design"},
}

var planStyleOrder = []string{"iso_structure", "blueprint", "neon", "isometric", "oblique", "wood_model", "blueprint_grunge"}

// PlanStyleStrictIsometric is the plan style whose source-image handling
// demands a rigid layout-preserving isometric conversion.
const PlanStyleStrictIsometric = "iso_structure"

var exteriorScenes = map[string]Entry{
	"pool_villa":       {Label: "Pool Villa", Prompt: "A wide-angle architectural photograph of a luxurious modern minimalist building, viewed from the far end of its backyard under a bright clear blue sky. Two-story structure, clean white cubic forms, large glass windows. A long rectangular swimming pool with clear turquoise water runs parallel to the building. Manicured green lawn, paved walkway, wooden sun loungers. Mature palm trees and tropical plants, resort-like atmosphere. Bright midday sunlight casting sharp shadows."},
	"housing":          {Label: "Housing Estate 1", Prompt: "A vibrant, modern housing estate scene. Features large, majestic transplanted trees with wooden supports (tree crutches) lining the streets and gardens, characteristic of new luxury developments. Lush, deep green manicured lawns. The architecture is modern and fresh. Clean, wide concrete or asphalt roads with no clutter. Bright, sunny atmosphere with blue sky. 8k resolution, highly detailed real estate photography."},
	"housing_2":        {Label: "Modern Housing 2", Prompt: "A realistic Thai housing estate atmosphere in bright daytime sunlight. Strictly preserve the original camera angle. Features a concrete or asphalt road in the foreground. The house fence is a mix of green hedges and black iron railings. Includes typical Thai electric poles and power lines along the road. Shady trees providing a natural and livable look. Authentic Thai suburban style. 8k resolution, photorealistic."},
	"housing_3":        {Label: "Luxury Mansion", Prompt: "A magnificent luxury mansion situated in an ultra-high-end exclusive housing estate. The architecture is grand and imposing. The property is surrounded by tall, perfectly trimmed manicured hedge fences providing privacy and elegance. The foreground features a very wide, clean, spacious paved road or boulevard, emphasizing grandeur. The overall atmosphere is expensive, orderly, prestigious, and pristine. Bright natural daylight, professional real estate photography, 8k resolution."},
	"housing_4":        {Label: "Modern Housing 4", Prompt: "A lively and vibrant modern Thai housing estate. The most prominent feature is the newly planted large trees with wooden props/crutches supporting them, typical of new landscaping. The lawns are lush green and perfectly manicured. The village streets are clean and wide. The atmosphere is sunny, fresh, and inviting. Modern architectural style. 8k resolution, photorealistic."},
	"european":         {Label: "Euro Garden", Prompt: "A grand architectural photograph situated in an opulent formal French garden estate. A long, elegant light-beige cobblestone paved driveway leads centrally towards the structure. Foreground dominated by perfectly manicured geometric boxwood hedges, low-trimmed garden mazes, and symmetrical cone-shaped cypress trees. Lush vibrant green lawns. Dramatic sky with textured clouds. Soft diffused natural daylight. High-end real estate photography."},
	"green_walkway":    {Label: "Green Walkway", Prompt: "A photorealistic architectural photograph nestled in a lush, mature woodland garden. A winding light-grey flagstone pathway leads from the foreground gate towards the building, flanked by manicured green lawns and rice fields. Bright clear natural sunlight, high contrast, vivid colors, bird's eye view perspective."},
	"rice_paddy":       {Label: "Rice Field", Prompt: "A stunning architectural photograph situated in the middle of vast, vibrant green rice paddy fields. Background features a majestic layering mountain range under a bright blue sky. A long straight paved concrete driveway leads from the foreground gate towards the building, flanked by manicured green lawns and rice fields. Bright clear natural sunlight, high contrast, vivid colors, bird's eye view perspective."},
	"lake_mountain":    {Label: "Lake Mountain", Prompt: "High-angle bird's eye perspective. Bright warm sunlight with sharp shadows. Vibrant blue sky with fluffy white clouds. Rugged mountainous terrain with snow-capped peaks in the distance, forested slopes. A large, reflective deep blue lake in the foreground or middle ground. Meticulously landscaped hillside with green lawns, stone pathways, and a clear blue swimming pool nearby."},
	"resort_dusk":      {Label: "Resort Dusk", Prompt: "High-resolution photograph of a resort or residential area at dusk/twilight. Blue-grey sky with wispy clouds. Meticulously designed gardens, lush greenery, large shade trees, pines, shrubs, and colorful flowers. Concrete or stone walkways winding through the garden. Water features or swimming pool reflecting the sky. Asphalt or concrete internal roads with garden lights and warm building lights creating a cozy atmosphere."},
	"hillside":         {Label: "Hillside", Prompt: "Vibrant mountain landscape teeming with lush green forests and expansive meadows under a bright cloud-dotted sky. A collection of structures arranged across the hillside. Modern tropical elements with thatch or flat roofs, stone, and wood. Features infinity pools, terraces, wooden walkways, and pavilions. Diverse vegetation and natural setting."},
	"lake_front":       {Label: "Lake Front", Prompt: "8K landscape photograph. Peaceful and fresh waterfront atmosphere. Foreground is a large still lake acting as a mirror reflecting the sky and landscape. Green manicured lawns along the bank, interspersed with gravel and natural stone paths. Background of lush rainforest and large mountains. Soft lighting, scattered clouds. The building sits harmoniously with nature."},
	"green_reflection": {Label: "Green Reflection", Prompt: "High-resolution landscape photograph emphasizing tranquility. Foreground is a fresh green lawn, manicured and smooth, leading to the edge of a large lake. Still water surface reflecting the surroundings perfectly. Background of towering mountains covered in dense green rainforest. Big trees framing the water. Diffused soft morning light. The building is placed harmoniously in this setting."},
	"khaoyai_1":        {Label: "Khao Yai 1", Prompt: "Modern two-story house with distinctive design. Exterior walls mix exposed concrete and black structure with wooden slats. Large floor-to-ceiling glass windows. Located amidst lush natural landscape. Background is a dense forest mountain range. Foreground features a reflecting pool, wide smooth lawn, and flower garden. Morning natural sunlight, peaceful and luxurious."},
	"khaoyai_2":        {Label: "Khao Yai 2", Prompt: "Modern resort style built of stone and wood, nestled in lush greenery. Tranquil atmosphere. Wide lawn bordered by white and purple flowering plants. A pool reflecting the building. Large trees including mango trees providing shade. Forested mountain backdrop. Afternoon sunlight bathing the scene in a relaxing ambiance."},
	"twilight_pool":    {Label: "Twilight Pool", Prompt: "Cinematic, photorealistic architectural landscape at twilight (Blue Hour). Foreground features a sleek dark-tiled swimming pool with mirror-like reflections. Wooden deck, built-in lounge seating, dining area. Illuminated by cozy warm golden floor lanterns and interior lights contrasting with the deep blue sky. Lush green hillside background."},
}

var exteriorSceneOrder = []string{
	"pool_villa", "housing", "housing_2", "housing_3", "housing_4",
	"european", "green_walkway", "rice_paddy", "lake_mountain",
	"resort_dusk", "hillside", "lake_front", "green_reflection",
	"khaoyai_1", "khaoyai_2", "twilight_pool",
}

var archStyles = map[string]Entry{
	"modern":       {Label: "Modern", Prompt: "Modern architecture, sleek design, clean lines, glass and concrete materials, geometric shapes, minimalist approach, high-end look"},
	"contemporary": {Label: "Contemporary", Prompt: "Contemporary architecture, fluid lines, asymmetry, eco-friendly materials, natural light integration, innovative design, artistic expression"},
	"minimal":      {Label: "Minimalist", Prompt: "Minimalist architecture, extreme simplicity, monochromatic palette, open floor plans, absence of clutter, functional design, zen atmosphere"},
	"european":     {Label: "European", Prompt: "European classic architecture, elegant proportions, ornamental details, stone textures, steep roofs, historic charm, grand facade"},
	"scandi":       {Label: "Scandinavian", Prompt: "Scandinavian architecture, nordic style, light wood timber, white walls, cozy atmosphere (hygge), functionalism, clean and bright"},
	"tropical":     {Label: "Tropical", Prompt: "Tropical architecture, lush greenery integration, wooden screens, large overhangs, resort vibe, natural ventilation, relaxing atmosphere, exotic materials"},
}

var archStyleOrder = []string{"modern", "contemporary", "minimal", "european", "scandi", "tropical"}

var renderStyles = map[string]Entry{
	"photo":       {Label: "Photorealistic", Prompt: "photorealistic, 4k, highly detailed, realistic texture"},
	"anime":       {Label: "Anime", Prompt: "anime art style, japanese animation, cel shading, vibrant colors"},
	"sketch":      {Label: "Sketch", Prompt: "pencil sketch, graphite drawing, hand drawn, monochrome, artistic sketch"},
	"oil":         {Label: "Oil Paint", Prompt: "oil painting style, textured brushstrokes, canvas texture, artistic"},
	"colorpencil": {Label: "Color Pencil", Prompt: "colored pencil drawing, soft textures, hand drawn, artistic"},
	"magic":       {Label: "Marker", Prompt: "magic marker illustration, bold lines, vibrant colors, marker texture"},
}

var renderStyleOrder = []string{"photo", "anime", "sketch", "oil", "colorpencil", "magic"}

// RoomTypePrompt returns the descriptor for a room type id, empty when unknown.
func RoomTypePrompt(id string) string { return prompt(roomTypes, id) }

func InteriorStylePrompt(id string) string { return prompt(interiorStyles, id) }

func PlanStylePrompt(id string) string { return prompt(planStyles, id) }

func ExteriorScenePrompt(id string) string { return prompt(exteriorScenes, id) }

func ArchStylePrompt(id string) string { return prompt(archStyles, id) }

// RenderStylePrompt resolves a render style id, falling back to the
// photorealistic descriptor for unknown or empty ids.
func RenderStylePrompt(id string) string {
	if e, ok := renderStyles[id]; ok {
		return e.Prompt
	}
	return renderStyles[renderStyleFallback].Prompt
}

// InteriorStyleLabel returns the display label for an interior style id,
// empty when unknown. Used by the plan analysis prompt.
func InteriorStyleLabel(id string) string {
	if e, ok := interiorStyles[id]; ok {
		return e.Label
	}
	return ""
}

func RoomTypes() []NamedOption      { return options(roomTypes, roomTypeOrder) }
func InteriorStyles() []NamedOption { return options(interiorStyles, interiorStyleOrder) }
func PlanStyles() []NamedOption     { return options(planStyles, planStyleOrder) }
func ExteriorScenes() []NamedOption { return options(exteriorScenes, exteriorSceneOrder) }
func ArchStyles() []NamedOption     { return options(archStyles, archStyleOrder) }
func RenderStyles() []NamedOption   { return options(renderStyles, renderStyleOrder) }

func prompt(table map[string]Entry, id string) string {
	if e, ok := table[id]; ok {
		return e.Prompt
	}
	return ""
}

func options(table map[string]Entry, order []string) []NamedOption {
	out := make([]NamedOption, 0, len(order))
	for _, id := range order {
		if e, ok := table[id]; ok {
			out = append(out, NamedOption{ID: id, Label: e.Label})
		}
	}
	return out
}
