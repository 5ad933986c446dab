package tools

import "github.com/mark3labs/mcp-go/mcp"

var dbInfoTool = mcp.NewTool("db_info",
	mcp.WithDescription(
		"Retrieve metadata about the SQLite database: path, file existence, "+
			"file size, last modification time and number of tables.",
	),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithOpenWorldHintAnnotation(false),
)

var queryTool = mcp.NewTool("query",
	mcp.WithDescription("Execute a raw SQL SELECT query."),
	mcp.WithString("sql",
		mcp.Required(),
		mcp.Description("SQL SELECT query."),
	),
	mcp.WithArray("values",
		mcp.Description("Parameter values for the query, bound to its ? placeholders in order."),
	),
	mcp.WithDestructiveHintAnnotation(true),
	mcp.WithOpenWorldHintAnnotation(false),
)

var listingTablesTool = mcp.NewTool("listing_tables",
	mcp.WithDescription("List all user tables in the SQLite database."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithOpenWorldHintAnnotation(false),
)

var getTableSchemaTool = mcp.NewTool("get_table_schema",
	mcp.WithDescription("Get the schema of a given table."),
	mcp.WithString("tableName",
		mcp.Required(),
		mcp.Description("Name of the table."),
	),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithOpenWorldHintAnnotation(false),
)

var createRecordTool = mcp.NewTool("create_record",
	mcp.WithDescription("Insert a new record into a specified table."),
	mcp.WithString("table",
		mcp.Required(),
		mcp.Description("Name of the table."),
	),
	mcp.WithObject("data",
		mcp.Required(),
		mcp.Description("Column values of the new record."),
	),
	mcp.WithReadOnlyHintAnnotation(false),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithOpenWorldHintAnnotation(false),
)

var readRecordsTool = mcp.NewTool("read_records",
	mcp.WithDescription("Read records from a specified table with optional filters."),
	mcp.WithString("table",
		mcp.Required(),
		mcp.Description("Name of the table."),
	),
	mcp.WithObject("conditions",
		mcp.Description("Column values every returned record must equal."),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of records to return."),
	),
	mcp.WithNumber("offset",
		mcp.Description("Number of records to skip, only applied together with limit."),
	),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithOpenWorldHintAnnotation(false),
)

var updateRecordsTool = mcp.NewTool("update_records",
	mcp.WithDescription("Update existing records in a table."),
	mcp.WithString("table",
		mcp.Required(),
		mcp.Description("Name of the table."),
	),
	mcp.WithObject("data",
		mcp.Required(),
		mcp.Description("Column values to set."),
	),
	mcp.WithObject("conditions",
		mcp.Required(),
		mcp.Description("Column values the updated records must equal."),
	),
	mcp.WithReadOnlyHintAnnotation(false),
	mcp.WithDestructiveHintAnnotation(true),
	mcp.WithOpenWorldHintAnnotation(false),
)

var deleteRecordsTool = mcp.NewTool("delete_records",
	mcp.WithDescription("Delete records from a table."),
	mcp.WithString("table",
		mcp.Required(),
		mcp.Description("Name of the table."),
	),
	mcp.WithObject("conditions",
		mcp.Required(),
		mcp.Description("Column values the deleted records must equal."),
	),
	mcp.WithReadOnlyHintAnnotation(false),
	mcp.WithDestructiveHintAnnotation(true),
	mcp.WithOpenWorldHintAnnotation(false),
)
