package admin

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is the transient message shown after an operation.
type Notification struct {
	Title       string
	Description string
	Variant     Variant
}

func (n Notification) String() string {
	return fmt.Sprintf("%s: %s", n.Title, n.Description)
}

type Notifier interface {
	Notify(Notification)
}

type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Notifier = NotifierFunc(func(Notification) {})

// Noun names a record in the operator's notifications, which are in French
// like the records themselves.
type Noun struct {
	Singular string // "catégorie"
	Plural   string // "catégories"
	Feminine bool
}

func (n Noun) definite() string {
	first, _ := utf8.DecodeRuneInString(n.Singular)
	if strings.ContainsRune("aeéèêiîouûhy", first) {
		return "l'" + n.Singular
	}
	if n.Feminine {
		return "la " + n.Singular
	}
	return "le " + n.Singular
}

// participle agrees a past participle such as "créé" with the noun.
func (n Noun) participle(p string) string {
	if n.Feminine {
		return p + "e"
	}
	return p
}

var (
	participles = map[Op]string{OpCreate: "créé", OpUpdate: "modifié", OpDelete: "supprimé"}
	verbs       = map[Op]string{OpLoad: "charger", OpCreate: "créer", OpUpdate: "modifier", OpDelete: "supprimer"}
)

func (s *Schema[T, F]) noun() Noun {
	if s.Noun.Singular != "" {
		return s.Noun
	}
	return Noun{Singular: s.Singular, Plural: s.Resource}
}

// success is e.g. "Catégorie créée: La catégorie a été créée avec succès."
func (s *Schema[T, F]) success(op Op) Notification {
	noun := s.noun()
	done := noun.participle(participles[op])
	n := Notification{
		Title:       title(noun.Singular) + " " + done,
		Description: fmt.Sprintf("%s a été %s avec succès.", title(noun.definite()), done),
		Variant:     VariantDefault,
	}
	if op == OpDelete {
		n.Variant = VariantDestructive
	}
	return n
}

// failure is e.g. "Erreur: Impossible de charger les catégories."
func (s *Schema[T, F]) failure(op Op) Notification {
	noun := s.noun()
	target := noun.definite()
	if op == OpLoad {
		target = "les " + noun.Plural
	}
	return Notification{
		Title:       "Erreur",
		Description: fmt.Sprintf("Impossible de %s %s.", verbs[op], target),
		Variant:     VariantDestructive,
	}
}

// title upper-cases the first letter only.
func title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
