package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/yigit/uniconnect-fixtures/internal/app/models"
)

// Campus centre used for new locations in buildings without known coordinates
const (
	campusCenterLat = -33.8838
	campusCenterLng = 151.2003
)

type coordinates struct {
	lat, lng float64
}

// buildingCoordinates places well-known campus buildings
var buildingCoordinates = map[string]coordinates{
	"Building 1":     {-33.8836, 151.2005},
	"Building 2":     {-33.8838, 151.2003},
	"Building 3":     {-33.8841, 151.2007},
	"Building 4":     {-33.8835, 151.2010},
	"Building 5":     {-33.8839, 151.2001},
	"Building 6":     {-33.8834, 151.2008},
	"Building 7":     {-33.8842, 151.2004},
	"Building 8":     {-33.8837, 151.2011},
	"Building 9":     {-33.8840, 151.2002},
	"Building 10":    {-33.8833, 151.2009},
	"CB02":           {-33.8838, 151.2003},
	"CB06":           {-33.8835, 151.2007},
	"CB07":           {-33.8841, 151.2005},
	"CB11":           {-33.8836, 151.2012},
	"Library":        {-33.8837, 151.2006},
	"Alumni Green":   {-33.8839, 151.2008},
	"Student Centre": {-33.8835, 151.2004},
}

var locationCapacity = map[string]int{
	"lecture_hall": 200,
	"classroom":    30,
	"lab":          25,
	"library":      100,
	"study_space":  15,
	"common_area":  50,
	"outdoor":      100,
}

var locationAmenities = map[string][]string{
	"lecture_hall": {"projector", "microphone", "whiteboard", "air_conditioning"},
	"classroom":    {"projector", "whiteboard", "air_conditioning", "power_outlets"},
	"lab":          {"computers", "projector", "specialized_equipment", "air_conditioning"},
	"library":      {"wifi", "quiet_zone", "computers", "printing"},
	"study_space":  {"wifi", "whiteboard", "power_outlets", "quiet_zone"},
	"common_area":  {"wifi", "seating", "food_allowed", "social_space"},
	"outdoor":      {"seating", "weather_dependent", "natural_light"},
}

var locationTypeTags = map[string][]string{
	"lecture_hall": {"lecture", "teaching", "large_group"},
	"classroom":    {"teaching", "small_group", "interactive"},
	"lab":          {"practical", "hands_on", "technical"},
	"library":      {"quiet", "study", "research"},
	"study_space":  {"group_work", "collaborative", "flexible"},
	"common_area":  {"social", "casual", "break"},
	"outdoor":      {"fresh_air", "informal", "weather_dependent"},
}

var locationDescriptions = map[string]string{
	"lecture_hall": "Large teaching space with tiered seating",
	"classroom":    "Standard teaching room for interactive learning",
	"lab":          "Specialized laboratory with technical equipment",
	"library":      "Quiet study space with research resources",
	"study_space":  "Flexible space for group or individual study",
	"common_area":  "Social space for relaxation and informal meetings",
	"outdoor":      "Open air space for informal gatherings",
}

var societyCategoryTags = map[string][]string{
	"academic":   {"study", "learning", "academic"},
	"cultural":   {"culture", "diversity", "heritage"},
	"sports":     {"sports", "fitness", "competition"},
	"technology": {"tech", "innovation", "programming"},
	"arts":       {"creative", "arts", "expression"},
	"social":     {"social", "networking", "community"},
}

// societyNameTags are added when the society name mentions them
var societyNameTags = []string{"international", "student", "women", "engineering", "business"}

var societyImageStyles = map[string]string{
	"academic":   "shapes",
	"cultural":   "identicon",
	"sports":     "avataaars",
	"technology": "bottts",
	"arts":       "fun-emoji",
	"social":     "personas",
}

const (
	maxLocationTags = 4
	maxSocietyTags  = 5
)

func defaultCapacity(locationType string) int {
	if c, ok := locationCapacity[locationType]; ok {
		return c
	}
	return 30
}

func defaultAmenities(locationType string) []string {
	if a, ok := locationAmenities[locationType]; ok {
		return append([]string(nil), a...)
	}
	return []string{"wifi", "seating"}
}

func locationTags(locationType, building string) []string {
	tags := []string{"general"}
	if t, ok := locationTypeTags[locationType]; ok {
		tags = append([]string(nil), t...)
	}
	if strings.Contains(building, "CB") {
		tags = append(tags, "central")
	} else {
		tags = append(tags, "campus")
	}
	return tags[:min(len(tags), maxLocationTags)]
}

func locationDescription(locationType, building, room string) string {
	desc, ok := locationDescriptions[locationType]
	if !ok {
		desc = "Campus location"
	}
	desc += " located in " + building
	if room != "" {
		desc += " in room " + room
	}
	return desc + "."
}

func societyTags(category, name string) []string {
	tags := []string{"community"}
	if t, ok := societyCategoryTags[category]; ok {
		tags = append([]string(nil), t...)
	}
	lower := strings.ToLower(name)
	for _, tag := range societyNameTags {
		if strings.Contains(lower, tag) {
			tags = append(tags, tag)
		}
	}
	return tags[:min(len(tags), maxSocietyTags)]
}

var (
	nonLetters   = regexp.MustCompile(`[^a-z\s]`)
	whitespace   = regexp.MustCompile(`\s+`)
	genericWords = regexp.MustCompile(`society|club|group`)
)

func societyContactEmail(name string) string {
	local := nonLetters.ReplaceAllString(strings.ToLower(name), "")
	local = whitespace.ReplaceAllString(strings.TrimSpace(local), ".")
	local = strings.Trim(genericWords.ReplaceAllString(local, ""), ".")
	return local + "@societies.uts.edu.au"
}

func societyImageURL(name, category string) string {
	style, ok := societyImageStyles[category]
	if !ok {
		style = "initials"
	}
	return fmt.Sprintf("https://api.dicebear.com/7.x/%s/png?seed=%s", style, whitespace.ReplaceAllString(name, ""))
}

// setDefaultAttr stores value under key unless the record already carries it
func setDefaultAttr(extra *models.Attributes, key string, value any) error {
	if _, ok := (*extra)[key]; ok {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if *extra == nil {
		*extra = make(models.Attributes)
	}
	(*extra)[key] = raw
	return nil
}
