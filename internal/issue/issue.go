// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Code identifies one detection rule. The string form is stable: it is
// the argument users pass to `modsleuth explain <code>`.
type Code int

const (
	UnreplacedVersionCode Code = iota + 1
	OutdatedSchemaCode
	FormatWarningsCode
	UnnamedRefmapCode
	ContainerCollisionCode
)

var codeNames = map[Code]string{
	UnreplacedVersionCode:  "unreplaced-version",
	OutdatedSchemaCode:     "outdated-schema",
	FormatWarningsCode:     "format-warnings",
	UnnamedRefmapCode:      "unnamed-refmap",
	ContainerCollisionCode: "container-collision",
}

func (c Code) String() string {
	return codeNames[c]
}

// ParseCode resolves the stable string form back to a Code.
// The second return value is false for unknown strings.
func ParseCode(s string) (Code, bool) {
	for code, name := range codeNames {
		if name == s {
			return code, true
		}
	}
	return 0, false
}

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	code     Code        // Code used to lookup the issue
	summary  string      // one-line summary shown in listings
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Code() Code {
	return i.code
}

func (i *Issue) Summary() string {
	return i.summary
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	unreplacedVersionIssue = &Issue{
		code:    UnreplacedVersionCode,
		summary: "Version is the literal build placeholder $version / ${version}",
		mdMsg: `
# Missing version replacement

The mod declares its version as the literal token ` + "`$version`" + ` or
` + "`${version}`" + `. That token is a template placeholder the build tool was
supposed to substitute with the real version during packaging, and it did not.

A mod shipped this way reports the same bogus version forever, so dependency
resolution, update checks, and crash reports all lie about what is actually
installed.

## Things you can try:
- Rebuild the mod with placeholder expansion enabled. For Gradle builds this
  is usually a misconfigured resource filter:
~~~groovy
processResources {
    inputs.property "version", project.version
    filesMatching("mod.json") {
        expand "version": project.version
    }
}
~~~

- If you only consume the mod, report the packaging defect upstream and pin a
  build that was released before the breakage.`,
	}

	outdatedSchemaIssue = &Issue{
		code:    OutdatedSchemaCode,
		summary: "Metadata still uses schema v0",
		mdMsg: `
# Outdated schema

The mod's metadata was parsed under schema tier 0, the oldest tier still
accepted. Tier 0 predates structured author records, semantic version
enforcement, and self-validation; loaders keep it alive only through a
compatibility shim.

Tier 0 is flagged unconditionally: the tier itself is the defect, no matter
how clean the rest of the metadata looks.

## Things you can try:
- Migrate the metadata to the current tier:
~~~json
{
  "schemaVersion": 2,
  "id": "examplemod",
  "version": "1.4.2"
}
~~~

- Re-release; no code changes are required, only the metadata file.`,
	}

	formatWarningsIssue = &Issue{
		code:    FormatWarningsCode,
		summary: "Current-tier metadata deviates from the published format",
		mdMsg: `
# Format warnings

The mod opted into the current schema tier, which supports strict
self-validation, and that validation reported deviations. Each warning names
the offending metadata location and what is wrong with it, for example a
version string that does not follow semantic versioning.

These are warnings rather than hard parse errors, so the mod still loads
today. Future loader releases tend to promote them to errors.

## Things you can try:
- Fix every reported location in the metadata file. The most common one is a
  non-semver version:
~~~json
{
  "version": "1.4.2"
}
~~~

- Validate locally before release so the warnings never ship.`,
	}

	unnamedRefmapIssue = &Issue{
		code:    UnnamedRefmapCode,
		summary: "Packaged mixin refmap kept the default name build-refmap.json",
		mdMsg: `
# Unnamed mixin refmap

The mod ships a mixin reference map at the default path
` + "`build-refmap.json`" + `. That name is what a known broken remote-build
pipeline emits when no unique refmap name was configured.

Refmaps are looked up by name at runtime. Two mods both shipping the default
name overwrite each other's mappings, which breaks mixin application in ways
that only reproduce with that exact mod combination installed.

## Things you can try:
- Give the refmap a unique, mod-specific name in the build configuration:
~~~groovy
loom {
    mixin {
        defaultRefmapName = "examplemod-refmap.json"
    }
}
~~~

- Rebuild and confirm the archive no longer contains ` + "`build-refmap.json`" + `.`,
	}

	containerCollisionIssue = &Issue{
		code:    ContainerCollisionCode,
		summary: "Menu subtype named *Container collides with the misnamed base type",
		mdMsg: `
# Menu is called 'con tater'

A class on the classpath subtypes the game's menu base type and has a simple
name ending in ` + "`Container`" + `. The base type itself is conventionally
misnamed with that unrelated alias, so naming menu subtypes ` + "`FooContainer`" + `
perpetuates the collision and confuses tooling that distinguishes menus from
actual item containers.

## Things you can try:
- Rename the class so its role is unambiguous:
~~~java
// before
public class AlloyFurnaceContainer extends ScreenHandler {}

// after
public class AlloyFurnaceMenu extends ScreenHandler {}
~~~

- If the class genuinely is an item container, do not extend the menu base
  type from it.`,
	}

	issues = map[Code]*Issue{
		unreplacedVersionIssue.Code():  unreplacedVersionIssue,
		outdatedSchemaIssue.Code():     outdatedSchemaIssue,
		formatWarningsIssue.Code():     formatWarningsIssue,
		unnamedRefmapIssue.Code():      unnamedRefmapIssue,
		containerCollisionIssue.Code(): containerCollisionIssue,
	}
)

// Values returns all registered issues ordered by Code, so listings are
// deterministic.
func Values() []*Issue {
	codes := maps.Keys(issues)
	slices.Sort(codes)
	out := make([]*Issue, 0, len(codes))
	for _, c := range codes {
		out = append(out, issues[c])
	}
	return out
}

func Get(code Code) *Issue {
	return issues[code]
}
