// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	LocalStoreNotFoundId Id = iota + 1
	ExecutableNotFoundId
	CorruptDocumentId
	SubprocessFailedId
	SysimageNotFoundId
	ConfigLoadFailedId
	JupyterNotFoundId
	KernelExistsId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
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

// Render renders the issue as terminal markdown using the glamour style at
// stylePath ("dark", "light", "auto" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range append(i.DocLinks(), i.extLinks...) {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	localStoreNotFoundIssue = &Issue{
		id: LocalStoreNotFoundId,
		mdMsg: `
# No .jlm directory found!

This command changes project settings, which live in a ` + "`.jlm`" + ` directory.
jlm looked in the current directory and every parent directory.

## Things you can try:
- Create one in the project root:
~~~
$ jlm init
~~~

- Or point jlm at an existing one:
~~~
$ jlm --jlm-dir /path/to/project/.jlm info
~~~`,
	}

	executableNotFoundIssue = &Issue{
		id: ExecutableNotFoundId,
		mdMsg: `
# Julia executable not found!

jlm could not find a julia executable to use.

## Search order:
1. The --julia option
2. The default recorded in .jlm/data.json
3. ` + "`julia`" + ` (or ` + "`default_executable`" + ` from your config) on $PATH

## Things you can try:
- Install Julia and make sure it is on your PATH
- Pass it explicitly:
~~~
$ jlm --julia /opt/julia/bin/julia run
~~~

- Record it for this project:
~~~
$ jlm --julia /opt/julia/bin/julia set-default
~~~`,
		extLinks: []HttpLink{"https://julialang.org/downloads/"},
	}

	corruptDocumentIssue = &Issue{
		id: CorruptDocumentId,
		mdMsg: `
# .jlm/data.json is corrupt!

The project configuration exists but is not valid. jlm will not overwrite it.

## Expected shape:
~~~json
{
  "name": "jlm.LocalStore",
  "config": {
    "default": "/path/to/julia",
    "runtime": {
      "/path/to/julia": {"sysimage": "/path/to/sys.so"}
    }
  }
}
~~~

## Things you can try:
- Fix the field reported above by hand
- Or remove the file and run ` + "`jlm init`" + ` again`,
	}

	subprocessFailedIssue = &Issue{
		id: SubprocessFailedId,
		mdMsg: `
# Julia subprocess failed!

A julia process started by jlm exited with an error.

## Things you can try:
- Read the julia output above for the actual error
- Re-run with verbose output to see the exact command line:
~~~
$ jlm --verbose install-backend
~~~

- Make sure the backend is up to date:
~~~
$ jlm update-backend
~~~`,
	}

	sysimageNotFoundIssue = &Issue{
		id: SysimageNotFoundId,
		mdMsg: `
# System image not found!

The configured system image does not exist.

## Things you can try:
- Compile the default system image:
~~~
$ jlm create-default-sysimage
~~~

- Or point jlm at another one:
~~~
$ jlm set-sysimage /path/to/sys.so
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your jlm configuration file could not be loaded.

## Things you can try:
- Check the CUE syntax and the field reported above
- Start from a minimal configuration:
~~~cue
default_executable: "julia"
ui: verbose: false
~~~

- Or bypass it:
~~~
$ jlm --config /dev/null info
~~~`,
	}

	jupyterNotFoundIssue = &Issue{
		id: JupyterNotFoundId,
		mdMsg: `
# Jupyter not found!

Installing a kernel needs the ` + "`jupyter`" + ` command to locate its data directory.

## Things you can try:
- Install Jupyter and make sure it is on your PATH
- Or set the command in your config:
~~~cue
jupyter: "/path/to/jupyter"
~~~`,
	}

	kernelExistsIssue = &Issue{
		id: KernelExistsId,
		mdMsg: `
# Kernel already installed!

A kernel spec with this name already exists and will not be overwritten.

## Things you can try:
- Pick another name:
~~~
$ jlm install-ijulia-kernel --name my-project
~~~

- Or remove the existing one:
~~~
$ jupyter kernelspec remove <name>
~~~`,
	}

	issues = []*Issue{
		localStoreNotFoundIssue,
		executableNotFoundIssue,
		corruptDocumentIssue,
		subprocessFailedIssue,
		sysimageNotFoundIssue,
		configLoadFailedIssue,
		jupyterNotFoundIssue,
		kernelExistsIssue,
	}
)

func Values() []*Issue {
	return slices.Clone(issues)
}

func Get(id Id) *Issue {
	idx := slices.IndexFunc(issues, func(i *Issue) bool { return i.id == id })
	if idx < 0 {
		return nil
	}
	return issues[idx]
}
