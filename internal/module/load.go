// SPDX-License-Identifier: MPL-2.0

package module

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"vconsole/internal/cmdline"
	"vconsole/internal/cmdtree"
	"vconsole/internal/runtime"
)

// moduleExts are the file extensions LoadDir treats as module sources.
var moduleExts = []string{".cue", ".toml", ".yaml", ".yml"}

// moduleDirEnv names the directory of the module file a script came from.
const moduleDirEnv = "VCONSOLE_MODULE_DIR"

// plan is a module checked against the namespace it will be applied to.
type plan struct {
	ns       *cmdtree.Namespace
	commands []cmdtree.CommandSpec
	aliases  []AliasDecl
}

// LoadCode decodes source and registers its commands and aliases in ns.
// label names the source in errors and selects its format (see Decode).
// Any failure is returned as a *LoadError and leaves ns unchanged.
//
// Source loaded this way has no module directory: relative workdirs are
// resolved against the process working directory.
func LoadCode(ns *cmdtree.Namespace, source []byte, label string, opts ...Option) error {
	o := newLoadOptions(opts)
	return loadCode(ns, source, label, "", &o)
}

// loadCode registers source in ns. dir is the directory of the module
// file, or "" for in-memory source.
func loadCode(ns *cmdtree.Namespace, source []byte, label, dir string, o *loadOptions) error {
	m, err := Decode(source, label, o.maxFileSize)
	if err != nil {
		return &LoadError{Label: label, Err: err}
	}

	p, err := check(ns, m, dir, o)
	if err != nil {
		return &LoadError{Label: label, Err: err}
	}
	if err := p.apply(); err != nil {
		return &LoadError{Label: label, Err: err}
	}

	o.logger.Info("module loaded",
		"namespace", ns.String(),
		"commands", len(p.commands),
		"aliases", len(p.aliases),
	)
	return nil
}

// LoadDir loads every module file below dir. File x.cue (or .toml, .yaml,
// .yml) is loaded into child namespace x of ns and subdirectory d becomes
// child namespace d. All child namespaces of a directory exist before its
// files are loaded, so aliases may target sibling namespaces.
//
// Loading stops at the first error; modules loaded before it stay
// registered.
func LoadDir(ns *cmdtree.Namespace, dir string, opts ...Option) error {
	o := newLoadOptions(opts)
	return loadDir(ns, dir, &o)
}

func loadDir(ns *cmdtree.Namespace, dir string, o *loadOptions) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &LoadError{Label: dir, Err: err}
	}

	type file struct {
		ns   *cmdtree.Namespace
		path string
	}
	var files []file
	var subdirs []file

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)

		nsName := name
		if !entry.IsDir() {
			ext := filepath.Ext(name)
			if !slices.Contains(moduleExts, strings.ToLower(ext)) {
				o.logger.Debug("skipping non-module file", "path", path)
				continue
			}
			nsName = strings.TrimSuffix(name, ext)
		}

		child, err := ns.ChildNamespace(nsName)
		if err != nil {
			return &LoadError{Label: path, Err: err}
		}
		if entry.IsDir() {
			subdirs = append(subdirs, file{ns: child, path: path})
		} else {
			files = append(files, file{ns: child, path: path})
		}
	}

	for _, f := range files {
		source, err := os.ReadFile(f.path)
		if err != nil {
			return &LoadError{Label: f.path, Err: err}
		}
		if err := loadCode(f.ns, source, f.path, dir, o); err != nil {
			return err
		}
	}
	for _, d := range subdirs {
		if err := loadDir(d.ns, d.path, o); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile loads the module file at path into a child namespace of ns
// named after the file, the way LoadDir does for each file it finds.
func LoadFile(ns *cmdtree.Namespace, path string, opts ...Option) error {
	o := newLoadOptions(opts)

	ext := filepath.Ext(path)
	if !slices.Contains(moduleExts, strings.ToLower(ext)) {
		return &LoadError{Label: path, Err: fmt.Errorf("unsupported module file extension %q", ext)}
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Label: path, Err: err}
	}
	child, err := ns.ChildNamespace(strings.TrimSuffix(filepath.Base(path), ext))
	if err != nil {
		return &LoadError{Label: path, Err: err}
	}
	return loadCode(child, source, path, filepath.Dir(path), &o)
}

// check validates m against the current contents of ns and the root
// shorthand table, so that apply cannot fail halfway.
func check(ns *cmdtree.Namespace, m *Module, dir string, o *loadOptions) (*plan, error) {
	p := &plan{ns: ns}
	declared := make(map[string]bool, len(m.Commands))

	for _, decl := range m.Commands {
		if declared[decl.Name] || ns.Command(decl.Name) != nil {
			return nil, fmt.Errorf("%w: %q in namespace %q", cmdtree.ErrDuplicateCommand, decl.Name, ns)
		}
		if ns.Child(decl.Name) != nil {
			return nil, &cmdtree.NameConflictError{Namespace: ns.String(), Name: decl.Name, Existing: "namespace"}
		}
		if _, ok := ns.Aliases()[decl.Name]; ok {
			return nil, &cmdtree.NameConflictError{Namespace: ns.String(), Name: decl.Name, Existing: "alias"}
		}

		spec, err := commandSpec(ns, decl, dir, o)
		if err != nil {
			return nil, err
		}
		declared[decl.Name] = true
		p.commands = append(p.commands, spec)
	}

	local := ns.Aliases()
	tree := ns.Tree()
	published := map[string]cmdline.Path{}

	for _, a := range m.aliases() {
		if !declared[a.Target] && ns.Child(a.Target) == nil && ns.Command(a.Target) == nil {
			return nil, fmt.Errorf("%w: alias %q targets %q in namespace %q",
				cmdtree.ErrUnknownAliasTarget, a.Name, a.Target, ns)
		}

		if a.Name != a.Target {
			if kind := literalKind(ns, declared, a.Name); kind != "" {
				return nil, &cmdtree.AliasConflictError{
					Scope:    ns.String(),
					Alias:    a.Name,
					Existing: kind + " " + ns.Path().Append(a.Name).String(),
					Target:   a.Target,
				}
			}
			if existing, ok := local[a.Name]; ok && existing != a.Target {
				return nil, &cmdtree.AliasConflictError{
					Scope: ns.String(), Alias: a.Name, Existing: existing, Target: a.Target,
				}
			}
			local[a.Name] = a.Target
		}

		target := ns.Path().Append(a.Target)
		existing, ok := published[a.Name]
		if !ok {
			existing, ok = tree.Shorthand(a.Name)
		}
		if ok && !slices.Equal(existing, target) {
			return nil, &cmdtree.AliasConflictError{
				Scope: "shorthand", Alias: a.Name, Existing: existing.String(), Target: target.String(),
			}
		}
		published[a.Name] = target
		p.aliases = append(p.aliases, a)
	}

	return p, nil
}

// literalKind names the kind of entity called name in ns once the
// declared commands are added, or returns "".
func literalKind(ns *cmdtree.Namespace, declared map[string]bool, name string) string {
	switch {
	case ns.Child(name) != nil:
		return cmdtree.KindNamespace.String()
	case declared[name] || ns.Command(name) != nil:
		return cmdtree.KindCommand.String()
	default:
		return ""
	}
}

func (p *plan) apply() error {
	for _, spec := range p.commands {
		if _, err := p.ns.AddCommand(spec); err != nil {
			return err
		}
	}
	for _, a := range p.aliases {
		if err := p.ns.AddAlias(a.Name, a.Target); err != nil {
			return err
		}
		if err := p.ns.Tree().AddShorthand(a.Name, p.ns.Path().Append(a.Target)); err != nil {
			return err
		}
	}
	return nil
}

// commandSpec turns a declaration into a validated CommandSpec.
func commandSpec(ns *cmdtree.Namespace, decl CommandDecl, dir string, o *loadOptions) (cmdtree.CommandSpec, error) {
	spec := cmdtree.CommandSpec{
		Name:        decl.Name,
		Summary:     decl.Summary,
		Description: decl.Description,
	}
	for _, opt := range decl.Options {
		spec.Options = append(spec.Options, cmdtree.OptionSpec{
			Name:        opt.Name,
			Short:       opt.Short,
			Type:        cmdtree.OptionType(opt.Type),
			Default:     defaultString(opt.Default),
			Description: opt.Description,
		})
	}
	for _, arg := range decl.Args {
		spec.Args = append(spec.Args, cmdtree.ArgSpec(arg))
	}

	switch {
	case (decl.Script == "") == (decl.Builtin == ""):
		return spec, &BodyError{Command: decl.Name}
	case decl.Builtin != "" && decl.Workdir != "":
		return spec, fmt.Errorf("command %q: workdir applies to script commands only", decl.Name)
	case decl.Builtin != "":
		body, ok := o.builtins[decl.Builtin]
		if !ok {
			return spec, &UnknownBuiltinError{Command: decl.Name, Builtin: decl.Builtin}
		}
		spec.Body = body
	default:
		name := ns.Path().Append(decl.Name).String()
		if _, err := o.runtime.Parse(name, decl.Script); err != nil {
			return spec, err
		}
		spec.Body = scriptBody(o.runtime, scriptSite{
			name:    name,
			script:  decl.Script,
			dir:     dir,
			workDir: resolveWorkDir(dir, decl.Workdir),
		})
	}

	if err := spec.Validate(); err != nil {
		return spec, err
	}
	return spec, nil
}

// defaultString renders a declared default in the textual form that
// OptionSpec parses.
func defaultString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// scriptSite is a script command with the place it runs in.
type scriptSite struct {
	name    string
	script  string
	dir     string // module file directory, "" for in-memory source
	workDir string
}

// resolveWorkDir resolves a declared workdir against the module directory.
func resolveWorkDir(dir, workdir string) string {
	if workdir == "" || dir == "" || filepath.IsAbs(workdir) {
		return workdir
	}
	return filepath.Join(dir, workdir)
}

// scriptBody runs the script in rt with the invocation's positional
// arguments as $1..$n and its options as VCONSOLE_FLAG_* variables.
// Scripts from a module file also see VCONSOLE_MODULE_DIR. Console commands
// are callable from the script through the invocation's dispatcher.
func scriptBody(rt *runtime.VirtualRuntime, site scriptSite) cmdtree.BodyFunc {
	return func(ctx context.Context, inv *cmdtree.Invocation) error {
		execCtx := runtime.NewExecutionContext(ctx, site.name, site.script)
		execCtx.Args = inv.Args
		execCtx.Flags = flagValues(inv)
		execCtx.WorkDir = site.workDir
		if site.dir != "" {
			execCtx.ExtraEnv = map[string]string{moduleDirEnv: site.dir}
		}
		execCtx.IO = runtime.IOContext{Stdin: os.Stdin, Stdout: inv.Stdout, Stderr: inv.Stderr}
		if inv.Dispatcher != nil {
			execCtx.Dispatcher = inv.Dispatcher
		}

		result := rt.Execute(execCtx)
		switch {
		case result.Success():
			return nil
		case result.Error != nil:
			return result.Error
		default:
			return &runtime.ScriptExitError{Name: site.name, Code: result.ExitCode}
		}
	}
}

// flagValues returns every declared option's value in its string form.
// Lists are comma separated.
func flagValues(inv *cmdtree.Invocation) map[string]string {
	values := make(map[string]string)
	for _, opt := range inv.Command.Options() {
		if opt.Type == cmdtree.OptionStrings {
			values[opt.Name] = strings.Join(inv.Strings(opt.Name), ",")
			continue
		}
		if f := inv.Flags.Lookup(opt.Name); f != nil {
			values[opt.Name] = f.Value.String()
		}
	}
	return values
}
