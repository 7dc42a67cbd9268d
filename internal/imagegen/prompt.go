package imagegen

// PortraitPrompt is the fixed prompt sent for every generation. It is a
// static asset: user input never reaches the prompt text.
const PortraitPrompt = "Convert these multiple images into 1 portrait size image (1080x1920), " +
	"hyper realistic Studio Ghibli style portrait with creative changes showing multiple " +
	"Ghiblified versions of the same person. Add soft Ghibli-style lighting, warm colors, " +
	"and nature elements typical of Studio Ghibli films."
