package extract

import (
	"regexp"
	"strings"
)

// Sections is the raw text of each recipe part found by ExtractSections.
// Metadata fields hold the value of "Label: value" lines.
type Sections struct {
	Title            string
	Description      string
	IngredientsText  string
	InstructionsText string

	PrepTime   string
	CookTime   string
	Servings   string
	Cuisine    string
	Difficulty string
}

type headerKind int

const (
	notHeader headerKind = iota
	headerTitle
	headerDescription
	headerIngredients
	headerInstructions
	headerPrepTime
	headerCookTime
	headerServings
	headerCuisine
	headerDifficulty
	headerOther
)

var headerLabels = map[string]headerKind{
	"title":            headerTitle,
	"recipe":           headerTitle,
	"recipe name":      headerTitle,
	"recipe title":     headerTitle,
	"name":             headerTitle,
	"description":      headerDescription,
	"summary":          headerDescription,
	"ingredients":      headerIngredients,
	"ingredient":       headerIngredients,
	"ingredient list":  headerIngredients,
	"ingredients list": headerIngredients,
	"instructions":     headerInstructions,
	"instruction":      headerInstructions,
	"directions":       headerInstructions,
	"direction":        headerInstructions,
	"method":           headerInstructions,
	"steps":            headerInstructions,
	"preparation":      headerInstructions,
	"procedure":        headerInstructions,
	"prep time":        headerPrepTime,
	"preparation time": headerPrepTime,
	"cook time":        headerCookTime,
	"cooking time":     headerCookTime,
	"servings":         headerServings,
	"serves":           headerServings,
	"yield":            headerServings,
	"cuisine":          headerCuisine,
	"difficulty":       headerDifficulty,
	"difficulty level": headerDifficulty,
	"time":             headerOther,
	"total time":       headerOther,
	"notes":            headerOther,
	"tips":             headerOther,
	"nutrition":        headerOther,
	"equipment":        headerOther,
}

// sectionPrefix matches labels such as "Ingredients for 4 people" or
// "Steps to follow". Only labels ending in a colon are read this way.
var sectionPrefix = regexp.MustCompile(`(?i)^(?:(ingredients?)|instructions?|directions?|method|steps?|procedure)\b`)

const maxPrefixLabelWords = 6

var (
	stepLine    = regexp.MustCompile(`(?i)^\s*(?:step\s*\d+\s*[:.)\-]?\s*|\d+[.)]\s+)\S`)
	measureLine = regexp.MustCompile(`(?i)^\s*(?:[-•+*]\s*)?(?:\d+(?:[.,/]\d+)?(?:\s+\d+/\d+)?|[½¼¾⅓⅔⅛])\s*(?:-\s*\d+\s*)?` +
		`(?:cups?|tablespoons?|tbsps?|tbs|teaspoons?|tsps?|grams?|g|kilograms?|kgs?|ml|millilit(?:er|re)s?|l|lit(?:er|re)s?|` +
		`oz|ounces?|lbs?|pounds?|cloves?|pieces?|pinch(?:es)?|slices?|cans?|sticks?|bunch(?:es)?|handfuls?|dash(?:es)?|` +
		`sprigs?|stalks?|large|medium|small|whole)\b`)
)

// parseHeader reports whether line is a section or metadata header and
// returns any content written after the colon.
func parseHeader(line string) (headerKind, string) {
	t := strings.TrimSpace(line)
	t = strings.TrimLeft(t, "#")
	t = strings.ReplaceAll(t, "*", "")
	t = strings.Trim(t, " \t_")
	label, rest, hasColon := strings.Cut(t, ":")
	kind, ok := headerLabels[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		kind, ok = prefixHeader(label, hasColon)
	}
	if !ok || isStep(t) {
		return notHeader, ""
	}
	if !hasColon {
		return kind, ""
	}
	return kind, strings.TrimSpace(rest)
}

func prefixHeader(label string, hasColon bool) (headerKind, bool) {
	if !hasColon || len(strings.Fields(label)) > maxPrefixLabelWords {
		return notHeader, false
	}
	m := sectionPrefix.FindStringSubmatch(strings.TrimSpace(label))
	switch {
	case m == nil:
		return notHeader, false
	case m[1] != "":
		return headerIngredients, true
	default:
		return headerInstructions, true
	}
}

type lineOwner int

const (
	ownerNone lineOwner = iota
	ownerTitle
	ownerHeader
	ownerDescription
	ownerIngredients
	ownerInstructions
	ownerOther
)

// ExtractSections splits prose recipe text into title, description,
// ingredients and instructions. It never fails; parts that cannot be found
// are left empty.
func ExtractSections(text string) Sections {
	lines := lineBreak.Split(text, -1)
	owner := make([]lineOwner, len(lines))

	var sec Sections
	titleIdx, title := findTitle(lines)
	sec.Title = title
	if titleIdx >= 0 {
		owner[titleIdx] = ownerTitle
	}

	var (
		ingredients                       []sectionLine
		instructions, preamble, described []string
		preambleIdx                       []int
		sawIngredients, sawInstructions   bool
		state                             = ownerNone
		pending                           = notHeader
	)
	for i, line := range lines {
		if i == titleIdx {
			continue
		}
		kind, inline := parseHeader(line)
		if kind != notHeader {
			owner[i] = ownerHeader
			pending = notHeader
			switch kind {
			case headerIngredients:
				state, sawIngredients = ownerIngredients, true
				if strings.TrimSpace(inline) != "" {
					ingredients = append(ingredients, sectionLine{idx: -1, text: inline})
				}
			case headerInstructions:
				state, sawInstructions = ownerInstructions, true
				instructions = appendNonEmpty(instructions, inline)
			case headerDescription:
				state = ownerDescription
				described = appendNonEmpty(described, inline)
			case headerTitle, headerOther:
				state = ownerOther
			default:
				state = ownerOther
				if inline != "" {
					sec.setMeta(kind, inline)
				} else {
					pending = kind
				}
			}
			continue
		}

		owner[i] = state
		switch state {
		case ownerNone:
			if i > titleIdx {
				preamble = append(preamble, line)
				preambleIdx = append(preambleIdx, i)
			}
		case ownerIngredients:
			ingredients = append(ingredients, sectionLine{idx: i, text: line})
		case ownerInstructions:
			instructions = append(instructions, line)
		case ownerDescription:
			described = append(described, line)
		case ownerOther:
			if pending != notHeader && strings.TrimSpace(line) != "" {
				sec.setMeta(pending, line)
				pending = notHeader
			}
		}
	}

	switch {
	case len(described) > 0:
		sec.Description = joinParagraph(described)
	case sawIngredients:
		sec.Description = joinParagraph(preamble)
		for _, i := range preambleIdx {
			owner[i] = ownerDescription
		}
	default:
		var used []int
		sec.Description, used = firstBlock(lines, preambleIdx)
		for _, i := range used {
			owner[i] = ownerDescription
		}
	}

	if !sawInstructions {
		ingredients = releaseSteps(ingredients, owner)
	}
	sec.IngredientsText = joinLines(sectionText(ingredients))
	sec.InstructionsText = joinLines(instructions)

	if sec.InstructionsText == "" {
		steps := collect(lines, owner, isStep)
		sec.InstructionsText = joinLines(pick(lines, steps))
		for _, i := range steps {
			owner[i] = ownerInstructions
		}
	}
	if sec.IngredientsText == "" {
		found := collect(lines, owner, isMeasure)
		sec.IngredientsText = joinLines(pick(lines, found))
		for _, i := range found {
			owner[i] = ownerIngredients
		}
	}
	if sec.InstructionsText == "" {
		sec.InstructionsText = joinLines(paragraphSteps(lines, owner))
	}
	return sec
}

type sectionLine struct {
	idx  int
	text string
}

// releaseSteps drops numbered steps from an ingredients section that has no
// instructions header after it, handing their lines back as unclaimed. When
// every entry is numbered the list itself is numbered, and only the steps
// after its first blank line are released.
func releaseSteps(section []sectionLine, owner []lineOwner) []sectionLine {
	numbered := true
	for _, l := range section {
		if strings.TrimSpace(l.text) != "" && !isStep(l.text) {
			numbered = false
			break
		}
	}

	kept := make([]sectionLine, 0, len(section))
	seenContent, pastBlank := false, false
	for _, l := range section {
		blank := strings.TrimSpace(l.text) == ""
		if blank && seenContent {
			pastBlank = true
		}
		seenContent = seenContent || !blank
		if l.idx >= 0 && isStep(l.text) && (!numbered || pastBlank) {
			owner[l.idx] = ownerNone
			continue
		}
		kept = append(kept, l)
	}
	return kept
}

func sectionText(section []sectionLine) []string {
	out := make([]string, 0, len(section))
	for _, l := range section {
		out = append(out, l.text)
	}
	return out
}

// findTitle prefers a "Title:" line that appears before the first
// ingredients or instructions header, then the first non-empty line. A
// first line that is itself a header means there is no title.
func findTitle(lines []string) (int, string) {
	for i, line := range lines {
		kind, inline := parseHeader(line)
		if kind == headerIngredients || kind == headerInstructions {
			break
		}
		if kind == headerTitle && inline != "" {
			return i, cleanTitle(inline)
		}
	}
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if kind, _ := parseHeader(line); kind != notHeader {
			return -1, ""
		}
		return i, cleanTitle(line)
	}
	return -1, ""
}

func cleanTitle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "#")
	s = strings.ReplaceAll(s, "*", "")
	return strings.TrimSpace(s)
}

func (s *Sections) setMeta(kind headerKind, value string) {
	value = strings.TrimSpace(strings.ReplaceAll(value, "*", ""))
	var field *string
	switch kind {
	case headerPrepTime:
		field = &s.PrepTime
	case headerCookTime:
		field = &s.CookTime
	case headerServings:
		field = &s.Servings
	case headerCuisine:
		field = &s.Cuisine
	case headerDifficulty:
		field = &s.Difficulty
	default:
		return
	}
	if *field == "" {
		*field = value
	}
}

// firstBlock returns the first run of non-empty preamble lines, unless
// every line in it reads like an ingredient or a step.
func firstBlock(lines []string, idx []int) (string, []int) {
	var block []int
	for _, i := range idx {
		if strings.TrimSpace(lines[i]) == "" {
			if len(block) > 0 {
				break
			}
			continue
		}
		block = append(block, i)
	}
	listy := true
	parts := make([]string, 0, len(block))
	for _, i := range block {
		if !isStep(lines[i]) && !measureLine.MatchString(lines[i]) {
			listy = false
		}
		parts = append(parts, lines[i])
	}
	if listy {
		return "", nil
	}
	return joinParagraph(parts), block
}

func isStep(l string) bool { return stepLine.MatchString(l) }

func isMeasure(l string) bool { return measureLine.MatchString(l) && !stepLine.MatchString(l) }

// collect returns the indices of unclaimed lines accepted by match.
func collect(lines []string, owner []lineOwner, match func(string) bool) []int {
	var out []int
	for i, l := range lines {
		if (owner[i] == ownerNone || owner[i] == ownerOther) && match(l) {
			out = append(out, i)
		}
	}
	return out
}

func pick(lines []string, idx []int) []string {
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		out = append(out, lines[i])
	}
	return out
}

// paragraphSteps treats every blank-line separated paragraph after the
// first as instructions, one sentence per step.
func paragraphSteps(lines []string, owner []lineOwner) []string {
	var (
		out       []string
		paragraph int
		inPara    bool
	)
	for i, l := range lines {
		if strings.TrimSpace(l) == "" || owner[i] == ownerHeader {
			inPara = false
			continue
		}
		if !inPara {
			inPara = true
			paragraph++
		}
		if paragraph < 2 || (owner[i] != ownerNone && owner[i] != ownerOther) {
			continue
		}
		out = append(out, splitSentences(l)...)
	}
	return out
}

func appendNonEmpty(list []string, s string) []string {
	if strings.TrimSpace(s) == "" {
		return list
	}
	return append(list, s)
}

func joinLines(lines []string) string {
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func joinParagraph(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
