package scaffold

// templateData feeds the built-in crate templates.
type templateData struct {
	Unit string // Ada unit name derived from the crate name
	Name string // crate name as written in the manifest
}

const binGPRTemplate = `project {{.Unit}} is
   for Source_Dirs use ("src");
   for Object_Dir use "obj";
   for Exec_Dir use "bin";
   for Main use ("{{.Name}}.adb");
end {{.Unit}};
`

const libGPRTemplate = `library project {{.Unit}} is
   for Source_Dirs use ("src");
   for Object_Dir use "obj";
   for Library_Name use "{{.Unit}}";
   for Library_Dir use "lib";
end {{.Unit}};
`

const binUnitTemplate = `procedure {{.Unit}} is
begin
   null;
end {{.Unit}};
`

const libUnitTemplate = `package {{.Unit}} is
end {{.Unit}};
`

const gitignoreTemplate = `obj/
bin/
lib/
.cratebuilder/
`
