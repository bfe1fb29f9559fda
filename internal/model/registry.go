package model

const releaseBase = "https://github.com/pagelens/models/releases/download/v1.3"

// DetectorAsset is the shared text detection model used by every language
// group.
var DetectorAsset = Asset{
	Name: "craft_mlt_25k.bin",
	URL:  releaseBase + "/craft_mlt_25k.bin",
	MD5:  "2f8227d2def4037cdb3b34389dcf9ec1",
}

// recognizerAssets maps a group model identifier to its downloadable weights.
var recognizerAssets = map[string]Asset{
	"latin": {
		Name: "latin_g2.bin",
		URL:  releaseBase + "/latin_g2.bin",
		MD5:  "468338820095b8f9e2e0c3e25374a1a4",
	},
	"cyrillic": {
		Name: "cyrillic_g2.bin",
		URL:  releaseBase + "/cyrillic_g2.bin",
		MD5:  "19f85f43d9128a89ac21b8d6a06973fe",
	},
	"arabic": {
		Name: "arabic_g1.bin",
		URL:  releaseBase + "/arabic_g1.bin",
		MD5:  "993074555550e4e06a6077d55ff0449a",
	},
	"devanagari": {
		Name: "devanagari_g1.bin",
		URL:  releaseBase + "/devanagari_g1.bin",
		MD5:  "db6b1f074fae3070f561675db908ac08",
	},
	"bengali": {
		Name: "bengali_g1.bin",
		URL:  releaseBase + "/bengali_g1.bin",
		MD5:  "cea9e897e2c0576b62cbb1554997ce1c",
	},
	"thai": {
		Name: "thai_g1.bin",
		URL:  releaseBase + "/thai_g1.bin",
		MD5:  "c535947aaf8d1e3f94cc845428b979b8",
	},
	"tamil": {
		Name: "tamil_g1.bin",
		URL:  releaseBase + "/tamil_g1.bin",
		MD5:  "4b93972fdacdcdabe6d57097025d4dc2",
	},
	"telugu": {
		Name: "telugu_g2.bin",
		URL:  releaseBase + "/telugu_g2.bin",
		MD5:  "f7171ae4746475e5191cc2025f1deb6b",
	},
	"kannada": {
		Name: "kannada_g2.bin",
		URL:  releaseBase + "/kannada_g2.bin",
		MD5:  "c240c97e4adb8773b53b3b3dec728627",
	},
	"chinese_sim": {
		Name: "chinese_sim_g2.bin",
		URL:  releaseBase + "/chinese_sim_g2.bin",
		MD5:  "b60f6a1123b9c80e9b1b5b58834a8ebb",
	},
	"chinese_tra": {
		Name: "chinese_tra_g1.bin",
		URL:  releaseBase + "/chinese_tra_g1.bin",
		MD5:  "f685ad1e9cbbad4b7a6dfa64da0f5a46",
	},
	"japanese": {
		Name: "japanese_g2.bin",
		URL:  releaseBase + "/japanese_g2.bin",
		MD5:  "1bd31e1d4f6e2b04f900c9bbcb279eea",
	},
	"korean": {
		Name: "korean_g2.bin",
		URL:  releaseBase + "/korean_g2.bin",
		MD5:  "71ec21f7d837bd25a5850044e54218a4",
	},
}

// RecognizerAsset looks up the weights asset for a group model identifier.
func RecognizerAsset(model string) (Asset, bool) {
	a, ok := recognizerAssets[model]
	return a, ok
}
