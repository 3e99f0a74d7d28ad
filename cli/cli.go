package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/jfrog/build-variants-go/build"
	"github.com/jfrog/build-variants-go/entities"
	"github.com/jfrog/build-variants-go/utils"
	"github.com/jfrog/gofrog/parallel"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	clitool "github.com/urfave/cli/v2"
)

const (
	formatFlag  = "format"
	projectFlag = "project"
	treeFlag    = "tree"

	tableFormat   = "table"
	jsonFormat    = "json"
	tomlFormat    = "toml"
	cycloneDxXml  = "cyclonedx/xml"
	cycloneDxJson = "cyclonedx/json"

	scanThreads    = 3
	activeMarker   = "*"
	defaultProject = "."
)

// The document printed by the modules command in json and toml formats.
type projectsDocument struct {
	Projects []build.ScanResult `json:"projects" toml:"projects"`
}

func GetCommands(logger utils.Log) []*clitool.Command {
	projectRootFlag := &clitool.StringFlag{
		Name:  projectFlag,
		Value: defaultProject,
		Usage: "[Default: .] Root directory of the Gradle project.` `",
	}
	tableOrJsonFlag := &clitool.StringFlag{
		Name:  formatFlag,
		Value: tableFormat,
		Usage: fmt.Sprintf("[Default: %s] Output format. Supported values are '%s' and '%s'.` `", tableFormat, tableFormat, jsonFormat),
	}

	return []*clitool.Command{
		{
			Name:      "modules",
			Usage:     "List the modules of one or more Gradle projects with their build variants",
			UsageText: "bv modules [command options] [project dirs...]",
			Flags: []clitool.Flag{
				&clitool.StringFlag{
					Name:  formatFlag,
					Value: tableFormat,
					Usage: fmt.Sprintf("[Default: %s] Output format. Supported values are '%s', '%s', '%s', '%s' and '%s'.` `",
						tableFormat, tableFormat, jsonFormat, tomlFormat, cycloneDxJson, cycloneDxXml),
				},
				&clitool.BoolFlag{
					Name:  treeFlag,
					Usage: "[Default: false] Nest submodules under their parent module.` `",
				},
			},
			Action: func(context *clitool.Context) error {
				dirs := context.Args().Slice()
				if len(dirs) == 0 {
					dirs = []string{defaultProject}
				}
				format := context.String(formatFlag)
				if err := validateFormat(format, tableFormat, jsonFormat, tomlFormat, cycloneDxJson, cycloneDxXml); err != nil {
					return err
				}
				if (format == cycloneDxJson || format == cycloneDxXml) && len(dirs) > 1 {
					return fmt.Errorf("the '%s' format supports a single project directory", format)
				}
				results, err := scanProjects(dirs, logger)
				if err != nil {
					return err
				}
				if context.Bool(treeFlag) {
					for i := range results {
						results[i].Modules = entities.BuildModuleTree(results[i].Modules)
					}
				}
				return printProjects(context.App.Writer, results, format)
			},
		},
		{
			Name:      "groups",
			Usage:     "List the module groups of a Gradle project",
			UsageText: "bv groups [command options]",
			Flags:     []clitool.Flag{projectRootFlag, tableOrJsonFlag},
			Action: func(context *clitool.Context) error {
				format := context.String(formatFlag)
				if err := validateFormat(format, tableFormat, jsonFormat); err != nil {
					return err
				}
				service := build.NewVariantService()
				service.SetLogger(logger)
				groups := entities.GroupModules(service.LoadModules(context.String(projectFlag)).Modules, nil)
				if format == jsonFormat {
					return printJson(context.App.Writer, groups)
				}
				return printGroupsTable(context.App.Writer, groups)
			},
		},
		{
			Name:      "variants",
			Usage:     "Show the build types, product flavors and variants of a module",
			UsageText: "bv variants [command options] <module>",
			Flags:     []clitool.Flag{projectRootFlag, tableOrJsonFlag},
			Action: func(context *clitool.Context) error {
				if context.NArg() != 1 {
					return errors.New("wrong number of arguments. Expected: bv variants [command options] <module>")
				}
				format := context.String(formatFlag)
				if err := validateFormat(format, tableFormat, jsonFormat); err != nil {
					return err
				}
				service := build.NewVariantService()
				service.SetLogger(logger)
				module, err := findModule(service.LoadModules(context.String(projectFlag)).Modules, context.Args().First())
				if err != nil {
					return err
				}
				if format == jsonFormat {
					return printJson(context.App.Writer, module)
				}
				return printVariantsTable(context.App.Writer, module)
			},
		},
		{
			Name:      "select",
			Usage:     "Select the active build variant of a module",
			UsageText: "bv select [command options] <module> <variant>",
			Flags:     []clitool.Flag{projectRootFlag},
			Action: func(context *clitool.Context) error {
				if context.NArg() != 2 {
					return errors.New("wrong number of arguments. Expected: bv select [command options] <module> <variant>")
				}
				moduleName, variant := context.Args().Get(0), context.Args().Get(1)
				projectRoot := context.String(projectFlag)
				service := build.NewVariantService()
				service.SetLogger(logger)
				if _, err := service.SelectVariant(projectRoot, service.LoadModules(projectRoot).Modules, moduleName, variant); err != nil {
					return err
				}
				_, err := fmt.Fprintf(context.App.Writer, "Selected variant '%s' for module '%s'\n", variant, moduleName)
				return err
			},
		},
	}
}

// scanProjects scans every project directory concurrently. Results keep the order of dirs.
func scanProjects(dirs []string, logger utils.Log) ([]build.ScanResult, error) {
	results := make([]build.ScanResult, len(dirs))
	producerConsumer := parallel.NewBounedRunner(scanThreads, false)
	errorChan := make(chan error, 1)

	go func() {
		defer producerConsumer.Done()
		for i, dir := range dirs {
			index, projectRoot := i, dir
			_, _ = producerConsumer.AddTaskWithError(func(threadId int) error {
				exists, err := utils.IsDirExists(projectRoot, true)
				if err != nil {
					return err
				}
				if !exists {
					return fmt.Errorf("project directory '%s' does not exist", projectRoot)
				}
				service := build.NewVariantService()
				service.SetLogger(logger)
				results[index] = service.LoadModules(projectRoot)
				logger.Debug(fmt.Sprintf("Thread %d scanned %d modules in %s", threadId, len(results[index].Modules), projectRoot))
				return nil
			}, func(err error) {
				// Write the error to the channel, but don't wait if the channel buffer is full.
				select {
				case errorChan <- err:
				default:
				}
			})
		}
	}()
	producerConsumer.Run()
	close(errorChan)
	if err := <-errorChan; err != nil {
		return nil, err
	}
	return results, nil
}

func printProjects(writer io.Writer, results []build.ScanResult, format string) error {
	switch format {
	case cycloneDxXml:
		encoder := cdx.NewBOMEncoder(writer, cdx.BOMFileFormatXML)
		encoder.SetPretty(true)
		return encoder.Encode(entities.ToCycloneDxBom(flattenModules(results[0].Modules)))
	case cycloneDxJson:
		encoder := cdx.NewBOMEncoder(writer, cdx.BOMFileFormatJSON)
		encoder.SetPretty(true)
		return encoder.Encode(entities.ToCycloneDxBom(flattenModules(results[0].Modules)))
	case jsonFormat:
		return printJson(writer, projectsDocument{Projects: results})
	case tomlFormat:
		return errors.WithStack(toml.NewEncoder(writer).Encode(projectsDocument{Projects: results}))
	default:
		for i, result := range results {
			if i > 0 {
				if _, err := fmt.Fprintln(writer); err != nil {
					return err
				}
			}
			if err := printModulesTable(writer, result); err != nil {
				return err
			}
		}
		return nil
	}
}

func printJson(writer io.Writer, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	var content bytes.Buffer
	err = json.Indent(&content, b, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(writer, content.String())
	return err
}

func printModulesTable(writer io.Writer, result build.ScanResult) error {
	if _, err := fmt.Fprintf(writer, "Project: %s (%s)\n", result.ProjectName, result.ProjectRoot); err != nil {
		return err
	}
	table := newTable(writer, []string{"Module", "Type", "Active Variant", "Available Variants"})
	var appendRows func(modules []entities.BuildVariant, level int)
	appendRows = func(modules []entities.BuildVariant, level int) {
		for _, module := range modules {
			table.Append([]string{
				strings.Repeat("  ", level) + module.ModuleName,
				module.ModuleType.String(),
				module.ActiveVariant,
				strings.Join(module.AvailableVariants, ", "),
			})
			appendRows(module.Children, level+1)
		}
	}
	appendRows(result.Modules, 0)
	table.SetFooter([]string{fmt.Sprintf("Total Modules %d", len(flattenModules(result.Modules))), "", "", ""})
	table.Render()
	return nil
}

func printGroupsTable(writer io.Writer, groups []entities.ModuleGroup) error {
	table := newTable(writer, []string{"Group", "Modules"})
	for _, group := range groups {
		var names []string
		for _, module := range group.Modules {
			names = append(names, module.ModuleName)
		}
		table.Append([]string{group.Name, strings.Join(names, ", ")})
	}
	table.Render()
	return nil
}

func printVariantsTable(writer io.Writer, module entities.BuildVariant) error {
	if _, err := fmt.Fprintf(writer, "Module: %s (%s)\nBuild types: %s\nProduct flavors: %s\n",
		module.ModuleName, module.ModuleType, strings.Join(module.BuildTypes, ", "), strings.Join(module.ProductFlavors, ", ")); err != nil {
		return err
	}
	table := newTable(writer, []string{"Variant", "Active"})
	for _, variant := range module.AvailableVariants {
		active := ""
		if variant == module.ActiveVariant {
			active = activeMarker
		}
		table.Append([]string{variant, active})
	}
	table.Render()
	return nil
}

func newTable(writer io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(writer)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func findModule(modules []entities.BuildVariant, moduleName string) (entities.BuildVariant, error) {
	for _, module := range modules {
		if module.ModuleName == moduleName {
			return module, nil
		}
	}
	return entities.BuildVariant{}, fmt.Errorf("module '%s' was not found", moduleName)
}

// flattenModules lists every module of a tree, parents before their children.
func flattenModules(modules []entities.BuildVariant) []entities.BuildVariant {
	var flat []entities.BuildVariant
	for _, module := range modules {
		children := module.Children
		module.Children = nil
		flat = append(flat, module)
		flat = append(flat, flattenModules(children)...)
	}
	return flat
}

func validateFormat(format string, supported ...string) error {
	for _, value := range supported {
		if format == value {
			return nil
		}
	}
	return fmt.Errorf("'%s' is not a valid value for '%s'", format, formatFlag)
}
