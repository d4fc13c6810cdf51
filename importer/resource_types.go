package importer

// supportedResourceTypes is the fixed set of azurerm resource categories the
// orchestrator can import, keyed without the provider prefix.
var supportedResourceTypes = map[string]struct{}{
	"api_management":          {},
	"app_service":             {},
	"app_service_plan":        {},
	"application_gateway":     {},
	"application_insights":    {},
	"automation_account":      {},
	"availability_set":        {},
	"batch_account":           {},
	"cdn_profile":             {},
	"container_group":         {},
	"container_registry":      {},
	"cosmosdb_account":        {},
	"data_factory":            {},
	"dns_zone":                {},
	"eventhub":                {},
	"eventhub_namespace":      {},
	"firewall":                {},
	"function_app":            {},
	"image":                   {},
	"key_vault":               {},
	"key_vault_secret":        {},
	"kubernetes_cluster":      {},
	"lb":                      {},
	"linux_virtual_machine":   {},
	"log_analytics_workspace": {},
	"managed_disk":            {},
	"mssql_database":          {},
	"mssql_server":            {},
	"mysql_server":            {},
	"network_interface":       {},
	"network_security_group":  {},
	"postgresql_server":       {},
	"private_dns_zone":        {},
	"public_ip":               {},
	"redis_cache":             {},
	"resource_group":          {},
	"route_table":             {},
	"search_service":          {},
	"servicebus_namespace":    {},
	"servicebus_queue":        {},
	"servicebus_topic":        {},
	"signalr_service":         {},
	"snapshot":                {},
	"sql_database":            {},
	"sql_server":              {},
	"storage_account":         {},
	"storage_container":       {},
	"subnet":                  {},
	"traffic_manager_profile": {},
	"virtual_machine":         {},
	"virtual_network":         {},
	"windows_virtual_machine": {},
}

// SupportedResourceType reports whether the orchestrator can import the
// passed resource type.
func SupportedResourceType(resourceType string) bool {
	_, ok := supportedResourceTypes[resourceType]
	return ok
}
