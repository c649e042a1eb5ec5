// Package subject models conversation topics.
package subject

// Subject is a topic label. Two subjects are equal when their labels are.
type Subject struct {
	Label string `json:"label"`
}

// Well-known subjects.
var (
	Health        = Subject{Label: "health"}
	Work          = Subject{Label: "work"}
	Family        = Subject{Label: "family"}
	Anxiety       = Subject{Label: "anxiety"}
	Entertainment = Subject{Label: "entertainment"}
	Life          = Subject{Label: "life"}
	Politics      = Subject{Label: "politics"}
	Growth        = Subject{Label: "growth"}
	Other         = Subject{Label: "other"}
	General       = Subject{Label: "general"}
)

var catalog = []Subject{Health, Work, Family, Anxiety, Entertainment, Life, Politics, Growth, Other, General}

// localizedLabels is keyed by subject label, then language code.
var localizedLabels = map[string]map[string]string{
	"health":        {"ja": "健康", "en": "Health"},
	"work":          {"ja": "仕事", "en": "Work"},
	"family":        {"ja": "家族", "en": "Family"},
	"anxiety":       {"ja": "不安", "en": "Anxiety"},
	"entertainment": {"ja": "娯楽", "en": "Entertainment"},
	"life":          {"ja": "生活", "en": "Life"},
	"politics":      {"ja": "政治", "en": "Politics"},
	"growth":        {"ja": "成長", "en": "Growth"},
	"other":         {"ja": "その他", "en": "Other"},
	"general":       {"ja": "一般", "en": "General"},
}

// New builds an ad-hoc subject. Only catalog subjects carry translations.
func New(label string) Subject {
	return Subject{Label: label}
}

// Catalog returns the well-known subjects in declaration order.
func Catalog() []Subject {
	return append([]Subject(nil), catalog...)
}

// IsCataloged reports whether s is one of the well-known subjects.
func (s Subject) IsCataloged() bool {
	_, ok := localizedLabels[s.Label]
	return ok
}

// LocalizedLabel looks language up verbatim, without the subtag
// normalisation emotion labels get. A miss returns the raw label.
func (s Subject) LocalizedLabel(language string) string {
	if label, ok := localizedLabels[s.Label][language]; ok {
		return label
	}
	return s.Label
}

func (s Subject) String() string {
	return s.Label
}
