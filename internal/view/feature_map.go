package view

// FeatureMap translates internal functional-need names into the
// friendly labels shown on controller cards. Needs without an entry
// fall back to their internal name.
var FeatureMap = map[string]string{
	"Limited Fine Motor Control":  "Precision-Friendly",
	"Weak Grip":                   "Low Grip Required",
	"Single-Handed Use":           "One-Handed",
	"Limited Reach":               "Easy Reach",
	"Quick Fatigue":               "Low Force",
	"Customisable Inputs":         "Customisable Inputs",
	"Large Buttons Needed":        "Large Buttons",
	"Repetitive Action Difficult": "Low Repetition",
	"Head/Mouth Control":          "Head/Mouth",
	"Controller Mounting Needed":  "Mountable",
}

// FriendlyName maps a need name through FeatureMap.
func FriendlyName(need string) string {
	if friendly, ok := FeatureMap[need]; ok {
		return friendly
	}
	return need
}
