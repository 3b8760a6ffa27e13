package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

var firstNames = []string{
	"John", "Jane", "Alice", "Bob", "Charlie", "Diana", "Eve", "Frank",
	"Grace", "Henry", "Isabel", "Jack", "Karen", "Liam", "Maria", "Noah",
	"Olivia", "Peter", "Quinn", "Rachel",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Wilson", "Anderson", "Taylor",
	"Thomas", "Moore", "Clark",
}

var emailDomains = []string{"example.com", "test.com", "demo.com", "mail.com"}

var productAdjectives = []string{
	"Compact", "Deluxe", "Classic", "Portable", "Premium", "Essential",
	"Modern", "Ultra", "Smart", "Eco", "Pro", "Vintage",
}

var productNouns = []string{
	"Speaker", "Jacket", "Notebook", "Lamp", "Backpack", "Blender",
	"Headphones", "Kettle", "Sneakers", "Tripod", "Organizer", "Monitor",
}

var reviewOpeners = []string{
	"Absolutely love this product,",
	"Solid purchase overall,",
	"Not quite what I expected,",
	"Exceeded my expectations,",
	"Decent value for the price,",
	"Would recommend to a friend,",
}

var reviewClosers = []string{
	"works exactly as described.",
	"shipping was quick and painless.",
	"the quality could be better though.",
	"I use it almost every day.",
	"will definitely buy again.",
	"customer support was helpful too.",
}

// DataGenerator produces synthetic field values off an explicit random
// source, so runs with the same seed are reproducible.
type DataGenerator struct {
	rand *rand.Rand
}

func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{rand: rand.New(rand.NewSource(seed))}
}

func (g *DataGenerator) FullName() string {
	return firstNames[g.rand.Intn(len(firstNames))] + " " + lastNames[g.rand.Intn(len(lastNames))]
}

// Email derives a unique address from the name and a per-run sequence
// number, so no two users in a run collide.
func (g *DataGenerator) Email(name string, seq int) string {
	user := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	return fmt.Sprintf("%s%d@%s", user, seq, emailDomains[g.rand.Intn(len(emailDomains))])
}

func (g *DataGenerator) ProductName() string {
	return productAdjectives[g.rand.Intn(len(productAdjectives))] + " " + productNouns[g.rand.Intn(len(productNouns))]
}

func (g *DataGenerator) Category() string {
	return Categories[g.rand.Intn(len(Categories))]
}

func (g *DataGenerator) Price(min, max float64) float64 {
	return round2(min + g.rand.Float64()*(max-min))
}

func (g *DataGenerator) Rating() int {
	return g.rand.Intn(5) + 1
}

func (g *DataGenerator) ReviewText() string {
	return reviewOpeners[g.rand.Intn(len(reviewOpeners))] + " " + reviewClosers[g.rand.Intn(len(reviewClosers))]
}

// DateBetween picks a uniform date in [start, end], day granularity.
func (g *DataGenerator) DateBetween(start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return start
	}
	return start.AddDate(0, 0, g.rand.Intn(days+1))
}

func (g *DataGenerator) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + g.rand.Intn(max-min+1)
}

func (g *DataGenerator) Pick(n int) int {
	return g.rand.Intn(n)
}

// Sample returns k distinct indexes out of n.
func (g *DataGenerator) Sample(n, k int) []int {
	if k > n {
		k = n
	}
	return g.rand.Perm(n)[:k]
}
