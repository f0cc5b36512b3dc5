package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var firstNames = []string{
	"Ana", "Maria", "João", "José", "Pedro", "Paulo", "Lucas", "Mateus",
	"Marcos", "Gabriel", "Rafael", "Daniel", "Samuel", "Davi", "Tiago", "André",
	"Felipe", "Bruno", "Carlos", "Eduardo", "Fernando", "Gustavo", "Henrique", "Igor",
	"Júlia", "Beatriz", "Camila", "Débora", "Ester", "Fernanda", "Gabriela", "Helena",
	"Isabela", "Joana", "Larissa", "Letícia", "Luana", "Mariana", "Natália", "Patrícia",
	"Priscila", "Raquel", "Rebeca", "Sara", "Tatiana", "Vanessa", "Vitória", "Simão",
}

var lastNames = []string{
	"Silva", "Santos", "Oliveira", "Souza", "Rodrigues", "Ferreira", "Alves", "Pereira",
	"Lima", "Gomes", "Costa", "Ribeiro", "Martins", "Carvalho", "Almeida", "Lopes",
	"Soares", "Fernandes", "Vieira", "Barbosa", "Rocha", "Dias", "Nascimento", "Andrade",
	"Moreira", "Nunes", "Marques", "Machado", "Mendes", "Freitas", "Cardoso", "Ramos",
	"Gonçalves", "Santana", "Teixeira", "Araújo", "Correia", "Moura", "Cavalcanti", "Monteiro",
	"Pinto", "Azevedo", "Campos", "Batista", "Castro", "Brandão", "Macedo", "Conceição",
}

var emailDomains = []string{
	"gmail.com", "hotmail.com", "outlook.com", "yahoo.com.br", "uol.com.br",
}

var neighborhoods = []string{
	"Jardim das Flores", "Vila Nova", "Centro", "Boa Vista", "Santa Cecília",
	"Parque São Jorge", "Jardim América", "Vila Mariana", "Bela Vista", "Cidade Nova",
	"Alto da Glória", "Morada do Sol",
}

var streets = []string{
	"Rua das Palmeiras", "Rua São Pedro", "Avenida Brasil", "Rua da Paz",
	"Rua Sete de Setembro", "Rua das Acácias", "Avenida Getúlio Vargas", "Rua Esperança",
	"Rua Tiradentes", "Rua dos Ipês",
}

var cities = []string{
	"São Paulo", "Campinas", "Santo André", "Guarulhos", "Osasco", "São Bernardo do Campo",
}

// MeetingTopics is the vocabulary seeded encontros draw their topic from.
var MeetingTopics = []string{
	"Oração", "Leitura bíblica", "Jejum", "Perdão", "Fé",
	"Família", "Evangelismo", "Serviço", "Santidade", "Mordomia",
}

// MainLocation is always the first location of ChurchLocations.
var MainLocation = Location{
	Name:         "Célula Sede",
	Description:  "Célula que se reúne no templo principal",
	Address:      "Avenida Central, 1000 - Centro, São Paulo",
	Neighborhood: "Centro",
	City:         "São Paulo",
	Main:         true,
}

// Location is where a group meets.
type Location struct {
	Name         string
	Description  string
	Address      string
	Neighborhood string
	City         string
	Main         bool
}

// Generator produces randomized display data. It is not safe for
// concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator wraps rng; a nil rng is replaced by a time-seeded source.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

func (g *Generator) pick(list []string) string {
	return list[g.rng.Intn(len(list))]
}

// RandomName joins a random first and last name. Collisions are possible.
func (g *Generator) RandomName() string {
	return g.pick(firstNames) + " " + g.pick(lastNames)
}

// RandomEmail derives an address from name. It is not guaranteed unique;
// the identity layer rejects duplicates.
func (g *Generator) RandomEmail(name string) string {
	local := strings.Join(strings.Fields(strings.ToLower(StripDiacritics(name))), ".")
	return fmt.Sprintf("%s%d@%s", local, g.rng.Intn(1000), g.pick(emailDomains))
}

// ChurchLocations returns count locations: MainLocation followed by
// count-1 house locations.
func (g *Generator) ChurchLocations(count int) []Location {
	if count <= 0 {
		return nil
	}
	locations := make([]Location, 0, count)
	locations = append(locations, MainLocation)
	for i := 1; i < count; i++ {
		hood := g.pick(neighborhoods)
		city := g.pick(cities)
		locations = append(locations, Location{
			Name:         "Célula " + hood,
			Description:  "Célula nos lares do bairro " + hood,
			Address:      fmt.Sprintf("%s, %d - %s, %s", g.pick(streets), 10+g.rng.Intn(990), hood, city),
			Neighborhood: hood,
			City:         city,
		})
	}
	return locations
}

// meetingCount draws a number of encontros in [1,3].
func (g *Generator) meetingCount() int {
	return 1 + g.rng.Intn(3)
}

// daysAgo draws a backdating offset in [0,60).
func (g *Generator) daysAgo() int {
	return g.rng.Intn(60)
}

func (g *Generator) topic() string {
	return g.pick(MeetingTopics)
}

// StripDiacritics removes combining marks: "João" becomes "Joao".
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
