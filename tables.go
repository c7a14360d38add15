package qmlnet

// Function tables for the native QmlNet library. Each field is bound to the
// export named by its sym tag; parameter and result types must match the C
// declarations exactly. Native objects travel as uintptr handles and
// strings returned as uintptr are owned by the caller and released with
// Utilities.FreeString.

// CallbacksTable registers and exercises the host callbacks.
type CallbacksTable struct {
	RegisterCallbacks           func(callbacks *NativeCallbacks)                 `sym:"type_info_callbacks_registerCallbacks"`
	IsTypeValid                 func(typeName string) bool                       `sym:"type_info_callbacks_isTypeValid"`
	ReleaseNetReferenceGCHandle func(handle uint64)                              `sym:"type_info_callbacks_releaseNetReferenceGCHandle"`
	ReleaseNetDelegateGCHandle  func(handle uint64)                              `sym:"type_info_callbacks_releaseNetDelegateGCHandle"`
	InstantiateType             func(typeInfo uintptr, aotTypeID int32) uintptr  `sym:"type_info_callbacks_instantiateType"`
	InvokeMethod                func(method, target, parameters, result uintptr) `sym:"type_info_callbacks_invokeMethod"`
}

// NetTypeInfoTable describes host types to the native side.
type NetTypeInfoTable struct {
	Create             func(fullTypeName string) uintptr           `sym:"type_info_create"`
	Destroy            func(typeInfo uintptr)                      `sym:"type_info_destroy"`
	GetID              func(typeInfo uintptr) uint64               `sym:"type_info_getId"`
	GetFullTypeName    func(typeInfo uintptr) uintptr              `sym:"type_info_getFullTypeName"`
	SetBaseType        func(typeInfo uintptr, baseType string)     `sym:"type_info_setBaseType"`
	GetPrefVariantType func(typeInfo uintptr) int32                `sym:"type_info_getPrefVariantType"`
	SetPrefVariantType func(typeInfo uintptr, variantType int32)   `sym:"type_info_setPrefVariantType"`
	AddMethod          func(typeInfo, methodInfo uintptr)          `sym:"type_info_addMethod"`
	GetMethodCount     func(typeInfo uintptr) int32                `sym:"type_info_getMethodCount"`
	GetMethodInfo      func(typeInfo uintptr, index int32) uintptr `sym:"type_info_getMethodInfo"`
	AddProperty        func(typeInfo, propertyInfo uintptr)        `sym:"type_info_addProperty"`
	GetPropertyCount   func(typeInfo uintptr) int32                `sym:"type_info_getPropertyCount"`
	GetProperty        func(typeInfo uintptr, index int32) uintptr `sym:"type_info_getProperty"`
	AddSignal          func(typeInfo, signalInfo uintptr)          `sym:"type_info_addSignal"`
	GetSignalCount     func(typeInfo uintptr) int32                `sym:"type_info_getSignalCount"`
	GetSignal          func(typeInfo uintptr, index int32) uintptr `sym:"type_info_getSignal"`
	IsLoaded           func(typeInfo uintptr) bool                 `sym:"type_info_isLoaded"`
	IsLoading          func(typeInfo uintptr) bool                 `sym:"type_info_isLoading"`
	EnsureLoaded       func(typeInfo uintptr)                      `sym:"type_info_ensureLoaded"`
}

// NetJsValueTable wraps JavaScript values handed to the host.
type NetJsValueTable struct {
	Destroy        func(jsValue uintptr)                             `sym:"net_js_value_destroy"`
	GetIsCallable  func(jsValue uintptr) bool                        `sym:"net_js_value_isCallable"`
	GetIsArray     func(jsValue uintptr) bool                        `sym:"net_js_value_isArray"`
	Call           func(jsValue, parameters uintptr) uintptr         `sym:"net_js_value_call"`
	GetProperty    func(jsValue uintptr, name string) uintptr        `sym:"net_js_value_getProperty"`
	GetItemAtIndex func(jsValue uintptr, index int32) uintptr        `sym:"net_js_value_getItemAtIndex"`
	SetProperty    func(jsValue uintptr, name string, value uintptr) `sym:"net_js_value_setProperty"`
	SetItemAtIndex func(jsValue uintptr, index int32, value uintptr) `sym:"net_js_value_setItemAtIndex"`
}

// NetMethodInfoTable describes host methods.
type NetMethodInfoTable struct {
	Create            func(parentType uintptr, methodName string, returnType uintptr, isStatic bool) uintptr `sym:"method_info_create"`
	Destroy           func(methodInfo uintptr)                                                               `sym:"method_info_destroy"`
	GetID             func(methodInfo uintptr) int32                                                         `sym:"method_info_getId"`
	GetMethodName     func(methodInfo uintptr) uintptr                                                       `sym:"method_info_getMethodName"`
	GetReturnType     func(methodInfo uintptr) uintptr                                                       `sym:"method_info_getReturnType"`
	IsStatic          func(methodInfo uintptr) bool                                                          `sym:"method_info_isStatic"`
	AddParameter      func(methodInfo uintptr, name string, typeInfo uintptr)                                `sym:"method_info_addParameter"`
	GetParameterCount func(methodInfo uintptr) int32                                                         `sym:"method_info_getParameterCount"`
	GetParameter      func(methodInfo uintptr, index int32) uintptr                                          `sym:"method_info_getParameter"`
	ParameterDestroy  func(parameter uintptr)                                                                `sym:"method_info_parameter_destroy"`
	ParameterGetName  func(parameter uintptr) uintptr                                                        `sym:"method_info_parameter_getName"`
	ParameterGetType  func(parameter uintptr) uintptr                                                        `sym:"method_info_parameter_getType"`
}

// NetPropertyInfoTable describes host properties.
type NetPropertyInfoTable struct {
	Create          func(parentType uintptr, name string, returnType uintptr, canRead, canWrite bool, notifySignal uintptr) uintptr `sym:"property_info_create"`
	Destroy         func(propertyInfo uintptr)                                                                                      `sym:"property_info_destroy"`
	GetID           func(propertyInfo uintptr) int32                                                                                `sym:"property_info_getId"`
	GetParentType   func(propertyInfo uintptr) uintptr                                                                              `sym:"property_info_getParentType"`
	GetPropertyName func(propertyInfo uintptr) uintptr                                                                              `sym:"property_info_getPropertyName"`
	GetReturnType   func(propertyInfo uintptr) uintptr                                                                              `sym:"property_info_getReturnType"`
	CanRead         func(propertyInfo uintptr) bool                                                                                 `sym:"property_info_canRead"`
	CanWrite        func(propertyInfo uintptr) bool                                                                                 `sym:"property_info_canWrite"`
	GetNotifySignal func(propertyInfo uintptr) uintptr                                                                              `sym:"property_info_getNotifySignal"`
	SetNotifySignal func(propertyInfo, signalInfo uintptr)                                                                          `sym:"property_info_setNotifySignal"`
}

// NetTypeManagerTable caches type descriptions on the native side.
type NetTypeManagerTable struct {
	GetTypeInfo func(fullTypeName string) uintptr `sym:"type_manager_getTypeInfo"`
}

// QGuiApplicationTable drives the Qt GUI application object.
type QGuiApplicationTable struct {
	Create             func(args, existingApp uintptr) uintptr      `sym:"qguiapplication_create"`
	Destroy            func(app uintptr)                            `sym:"qguiapplication_destroy"`
	Exec               func(app uintptr) int32                      `sym:"qguiapplication_exec"`
	AddTriggerCallback func(app, callback uintptr)                  `sym:"qguiapplication_addTriggerCallback"`
	RequestTrigger     func(app uintptr)                            `sym:"qguiapplication_requestTrigger"`
	Exit               func(app uintptr, returnCode int32)          `sym:"qguiapplication_exit"`
	InternalPointer    func(app uintptr) uintptr                    `sym:"qguiapplication_internalPointer"`
	SetAttribute       func(attribute int32, on bool)               `sym:"qguiapplication_setAttribute"`
	TestAttribute      func(attribute int32) bool                   `sym:"qguiapplication_testAttribute"`
	SendPostedEvents   func(app, receiver uintptr, eventType int32) `sym:"qguiapplication_sendPostedEvents"`
}

// QQmlApplicationEngineTable drives the QML engine.
type QQmlApplicationEngineTable struct {
	Create                   func(existingEngine uintptr) uintptr                                                       `sym:"qqmlapplicationengine_create"`
	Destroy                  func(engine uintptr)                                                                       `sym:"qqmlapplicationengine_destroy"`
	Load                     func(engine uintptr, path string)                                                          `sym:"qqmlapplicationengine_load"`
	LoadData                 func(engine uintptr, data string)                                                          `sym:"qqmlapplicationengine_loadData"`
	RegisterType             func(typeInfo uintptr, uri string, versionMajor, versionMinor int32, qmlName string) int32 `sym:"qqmlapplicationengine_registerType"`
	RegisterSingletonTypeQml func(url, uri string, versionMajor, versionMinor int32, qmlName string) int32              `sym:"qqmlapplicationengine_registerSingletonTypeQml"`
	AddImportPath            func(engine uintptr, path string)                                                          `sym:"qqmlapplicationengine_addImportPath"`
	GetContextProperty       func(engine uintptr, name string) uintptr                                                  `sym:"qqmlapplicationengine_getContextProperty"`
	SetContextProperty       func(engine uintptr, name string, value uintptr)                                           `sym:"qqmlapplicationengine_setContextProperty"`
	InternalPointer          func(engine uintptr) uintptr                                                               `sym:"qqmlapplicationengine_internalPointer"`
}

// NetVariantTable manipulates variants exchanged with QML.
type NetVariantTable struct {
	Create          func() uintptr                       `sym:"net_variant_create"`
	Destroy         func(variant uintptr)                `sym:"net_variant_destroy"`
	GetVariantType  func(variant uintptr) int32          `sym:"net_variant_getVariantType"`
	SetNull         func(variant uintptr)                `sym:"net_variant_setNull"`
	SetNetReference func(variant, reference uintptr)     `sym:"net_variant_setNetReference"`
	GetNetReference func(variant uintptr) uintptr        `sym:"net_variant_getNetReference"`
	SetBool         func(variant uintptr, value bool)    `sym:"net_variant_setBool"`
	GetBool         func(variant uintptr) bool           `sym:"net_variant_getBool"`
	SetInt          func(variant uintptr, value int32)   `sym:"net_variant_setInt"`
	GetInt          func(variant uintptr) int32          `sym:"net_variant_getInt"`
	SetUInt         func(variant uintptr, value uint32)  `sym:"net_variant_setUInt"`
	GetUInt         func(variant uintptr) uint32         `sym:"net_variant_getUInt"`
	SetLong         func(variant uintptr, value int64)   `sym:"net_variant_setLong"`
	GetLong         func(variant uintptr) int64          `sym:"net_variant_getLong"`
	SetDouble       func(variant uintptr, value float64) `sym:"net_variant_setDouble"`
	GetDouble       func(variant uintptr) float64        `sym:"net_variant_getDouble"`
	SetString       func(variant uintptr, value string)  `sym:"net_variant_setString"`
	GetString       func(variant uintptr) uintptr        `sym:"net_variant_getString"`
	SetJsValue      func(variant, jsValue uintptr)       `sym:"net_variant_setJsValue"`
	GetJsValue      func(variant uintptr) uintptr        `sym:"net_variant_getJsValue"`
	Clear           func(variant uintptr)                `sym:"net_variant_clear"`
}

// NetReferenceTable wraps host objects referenced from QML.
type NetReferenceTable struct {
	Create         func(objectID uint64, typeInfo uintptr, frozen bool) uintptr        `sym:"net_instance_create"`
	Destroy        func(reference uintptr)                                             `sym:"net_instance_destroy"`
	Clone          func(reference uintptr) uintptr                                     `sym:"net_instance_clone"`
	GetObjectID    func(reference uintptr) uint64                                      `sym:"net_instance_getObjectId"`
	GetTypeInfo    func(reference uintptr) uintptr                                     `sym:"net_instance_getTypeInfo"`
	ActivateSignal func(reference uintptr, signalName string, parameters uintptr) bool `sym:"net_instance_activateSignal"`
}

// NetVariantListTable manipulates lists of variants.
type NetVariantListTable struct {
	Create  func() uintptr                          `sym:"net_variant_list_create"`
	Destroy func(list uintptr)                      `sym:"net_variant_list_destroy"`
	Count   func(list uintptr) int32                `sym:"net_variant_list_count"`
	Add     func(list, variant uintptr)             `sym:"net_variant_list_add"`
	Get     func(list uintptr, index int32) uintptr `sym:"net_variant_list_get"`
	Remove  func(list uintptr, index int32)         `sym:"net_variant_list_remove"`
	Clear   func(list uintptr)                      `sym:"net_variant_list_clear"`
}

// NetTestHelperTable runs QML snippets in tests.
type NetTestHelperTable struct {
	RunQML func(engine uintptr, qml string, runEvents bool) bool `sym:"net_test_helper_runQml"`
}

// NetSignalInfoTable describes host signals.
type NetSignalInfoTable struct {
	Create            func(parentType uintptr, name string) uintptr `sym:"signal_info_create"`
	Destroy           func(signalInfo uintptr)                      `sym:"signal_info_destroy"`
	GetParentType     func(signalInfo uintptr) uintptr              `sym:"signal_info_getParentType"`
	GetName           func(signalInfo uintptr) uintptr              `sym:"signal_info_getName"`
	AddParameter      func(signalInfo uintptr, variantType int32)   `sym:"signal_info_addParameter"`
	GetParameterCount func(signalInfo uintptr) int32                `sym:"signal_info_getParameterCount"`
	GetParameter      func(signalInfo uintptr, index int32) int32   `sym:"signal_info_getParameter"`
}

// QResourceTable registers compiled Qt resources.
type QResourceTable struct {
	RegisterResource   func(rccFileName, resourceRoot string) bool `sym:"qresource_registerResource"`
	UnregisterResource func(rccFileName, resourceRoot string) bool `sym:"qresource_unregisterResource"`
}

// NetDelegateTable wraps host delegates handed to QML.
type NetDelegateTable struct {
	Create    func(handle uint64) uintptr   `sym:"delegate_create"`
	Destroy   func(delegate uintptr)        `sym:"delegate_destroy"`
	GetHandle func(delegate uintptr) uint64 `sym:"delegate_getHandle"`
}

// QQuickStyleTable selects the Qt Quick Controls style.
type QQuickStyleTable struct {
	SetFallbackStyle func(style string) `sym:"qquickstyle_setFallbackStyle"`
	SetStyle         func(style string) `sym:"qquickstyle_setStyle"`
}

// QtTable exposes process level Qt helpers.
type QtTable struct {
	PutEnv  func(name, value string) bool `sym:"qt_putenv"`
	GetEnv  func(name string) uintptr     `sym:"qt_getenv"`
	Version func() string                 `sym:"qt_version"`
}

// UtilitiesTable releases memory allocated by the native library.
type UtilitiesTable struct {
	FreeString func(str uintptr) `sym:"freeString"`
}

// QtWebEngineTable initializes the optional web engine integration.
type QtWebEngineTable struct {
	Initialize func() `sym:"qtwebebengine_initialize"`
}

// combinedTables groups the subsystems bound together in one pass.
type combinedTables struct {
	QtWebEngineTable
}
