package apperr

// Code is a stable, client-facing error identifier. Codes are never
// renumbered or reused for a different meaning.
type Code string

const (
	ENoError       Code = "E_NO_ERROR"
	EInternalError Code = "E_INTERNAL_ERROR"
	EWrongRequest  Code = "E_WRONG_REQUEST"

	// access
	EAuthorizationRequired Code = "E_AUTHORIZATION_REQUIRED"
	ESessionNotFound       Code = "E_SESSION_NOT_FOUND"
	ELoginFailed           Code = "E_LOGIN_FAILED"
	EAccessDenied          Code = "E_ACCESS_DENIED"
	EAdminRequired         Code = "E_ADMIN_REQUIRED"
	ESystemAdminRequired   Code = "E_SYSTEM_ADMIN_REQUIRED"
	EClientAccountRequired Code = "E_CLIENT_ACCOUNT_REQUIRED"
	EDeviceCookieLockout   Code = "E_DEVICE_COOKIE_LOCKOUT"
	EDeviceCookieInvalid   Code = "E_DEVICE_COOKIE_INVALID"

	// CSRF
	ECSRFTokenMissing     Code = "E_CSRF_TOKEN_MISSING"
	ECSRFTokenMismatch    Code = "E_CSRF_TOKEN_MISMATCH"
	ECSRFTokenInvalid     Code = "E_CSRF_TOKEN_INVALID"
	ECSRFTokenUserMismatch Code = "E_CSRF_TOKEN_USER_MISMATCH"

	// user
	EUserNotFound        Code = "E_USER_NOT_FOUND"
	EUserExists          Code = "E_USER_EXISTS"
	EUserDeleted         Code = "E_USER_DELETED"
	EUserNotDeleted      Code = "E_USER_NOT_DELETED"
	EUserBeingErased     Code = "E_USER_BEING_ERASED"
	EAccountNotConfirmed Code = "E_ACCOUNT_NOT_CONFIRMED"
	EAccountDisabled     Code = "E_ACCOUNT_DISABLED"
	EWrongPassword       Code = "E_WRONG_PASSWORD"

	// project
	EProjectNotFound           Code = "E_PROJECT_NOT_FOUND"
	EProjectExists             Code = "E_PROJECT_EXISTS"
	EProjectDeleted            Code = "E_PROJECT_DELETED"
	EProjectNotDeleted         Code = "E_PROJECT_NOT_DELETED"
	EProjectBeingErased        Code = "E_PROJECT_BEING_ERASED"
	EPoolNotFound              Code = "E_POOL_NOT_FOUND"
	EPoolExists                Code = "E_POOL_EXISTS"
	EPoolLocked                Code = "E_POOL_LOCKED"
	EDefaultProjectImmutable   Code = "E_DEFAULT_PROJECT_IMMUTABLE"
	EProjectDeleteError        Code = "E_PROJECT_DELETE_ERROR"
	ECPURAMMultiplicityBroken Code = "E_CPU_RAM_MULTIPLICITY_BROKEN"
	ENodeCPUInvalid            Code = "E_NODE_CPU_INVALID"
	ENodeRAMInvalid            Code = "E_NODE_RAM_INVALID"
	EInvalidMemPerCore         Code = "E_INVALID_MEM_PER_CORE"

	// pool
	EInvalidNodeGroup Code = "E_INVALID_NODE_GROUP"

	// fuzzer
	EFuzzerNotFound         Code = "E_FUZZER_NOT_FOUND"
	EFuzzerExists           Code = "E_FUZZER_EXISTS"
	EFuzzerDeleted          Code = "E_FUZZER_DELETED"
	EFuzzerNotDeleted       Code = "E_FUZZER_NOT_DELETED"
	EFuzzerBeingErased      Code = "E_FUZZER_BEING_ERASED"
	EFuzzerLangMismatch     Code = "E_FUZZER_LANG_MISMATCH"
	EFuzzerEngineMismatch   Code = "E_FUZZER_ENGINE_MISMATCH"
	EFuzzerNotInTrashbin    Code = "E_FUZZER_NOT_IN_TRASHBIN"
	EActiveRevisionNotFound Code = "E_ACTIVE_REVISION_NOT_FOUND"

	// revision
	ERevisionNotFound          Code = "E_REVISION_NOT_FOUND"
	ERevisionExists            Code = "E_REVISION_EXISTS"
	ERevisionDeleted           Code = "E_REVISION_DELETED"
	ERevisionNotDeleted        Code = "E_REVISION_NOT_DELETED"
	ERevisionBeingErased       Code = "E_REVISION_BEING_ERASED"
	ERevisionCanNotBeChanged   Code = "E_REVISION_CAN_NOT_BE_CHANGED"
	ERevisionIsNotRunning      Code = "E_REVISION_IS_NOT_RUNNING"
	ERevisionCanOnlyRestart    Code = "E_REVISION_CAN_ONLY_RESTART"
	ERevisionAlreadyRunning    Code = "E_REVISION_ALREADY_RUNNING"
	EMustUploadBinaries        Code = "E_MUST_UPLOAD_BINARIES"
	ENoPoolToUse               Code = "E_NO_POOL_TO_USE"
	ECPUUsageInvalid           Code = "E_CPU_USAGE_INVALID"
	ERAMUsageInvalid           Code = "E_RAM_USAGE_INVALID"
	ETmpfsSizeInvalid          Code = "E_TMPFS_SIZE_INVALID"
	ETotalRAMUsageInvalid      Code = "E_TOTAL_RAM_USAGE_INVALID"
	ESourceRevisionNotFound    Code = "E_SOURCE_REVISION_NOT_FOUND"
	ETargetRevisionNotFound    Code = "E_TARGET_REVISION_NOT_FOUND"
	ECorpusOverwriteForbidden  Code = "E_CORPUS_OVERWRITE_FORBIDDEN"
	ENoCorpusFound             Code = "E_NO_CORPUS_FOUND"
	ECopySourceTargetSame      Code = "E_COPY_SOURCE_TARGET_SAME"

	// image
	EImageNotFound          Code = "E_IMAGE_NOT_FOUND"
	EImageExists            Code = "E_IMAGE_EXISTS"
	EImageNotReady          Code = "E_IMAGE_NOT_READY"
	EEngineLangIncompatible Code = "E_ENGINE_LANG_INCOMPATIBLE"

	// engine
	EEngineNotFound           Code = "E_ENGINE_NOT_FOUND"
	EEngineExists             Code = "E_ENGINE_EXISTS"
	EEngineLangNotEnabled     Code = "E_ENGINE_LANG_NOT_ENABLED"
	EEngineLangAlreadyEnabled Code = "E_ENGINE_LANG_ALREADY_ENABLED"
	EEnginesInvalid           Code = "E_ENGINES_INVALID"
	EEngineInUseBy            Code = "E_ENGINE_IN_USE_BY"

	// lang
	ELangNotFound Code = "E_LANG_NOT_FOUND"
	ELangExists   Code = "E_LANG_EXISTS"
	ELangsInvalid Code = "E_LANGS_INVALID"
	ELangInUseBy  Code = "E_LANG_IN_USE_BY"

	// integration
	EIntegrationNotFound      Code = "E_INTEGRATION_NOT_FOUND"
	EIntegrationExists        Code = "E_INTEGRATION_EXISTS"
	EIntegrationTypeMismatch  Code = "E_INTEGRATION_TYPE_MISMATCH"

	// integration type
	EIntegrationTypeNotFound Code = "E_INTEGRATION_TYPE_NOT_FOUND"
	EIntegrationTypeExists   Code = "E_INTEGRATION_TYPE_EXISTS"
	EIntegrationTypeInUseBy  Code = "E_INTEGRATION_TYPE_IN_USE_BY"

	// crash
	ECrashNotFound Code = "E_CRASH_NOT_FOUND"

	// statistics
	EStatisticsNotFound Code = "E_STATISTICS_NOT_FOUND"

	// files
	EUploadFailure    Code = "E_UPLOAD_FAILURE"
	EFileNotFound     Code = "E_FILE_NOT_FOUND"
	EFileTooLarge     Code = "E_FILE_TOO_LARGE"
	EFileNotArchive   Code = "E_FILE_NOT_ARCHIVE"
	EJSONFileInvalid  Code = "E_JSON_FILE_IS_INVALID"
)

type entry struct {
	status  int
	message string
}

var registry = map[Code]entry{
	ENoError:       {200, "No error. Operation successful"},
	EInternalError: {500, "Internal error occurred. Please, try again later or contact support service"},
	EWrongRequest:  {422, "Wrong request parameters"},

	EAuthorizationRequired: {401, "Authorization required"},
	ESessionNotFound:       {401, "Session not found or expired"},
	ELoginFailed:           {401, "Login failed: Invalid username or password"},
	EAccessDenied:          {403, "Access denied"},
	EAdminRequired:         {403, "Administrator rights required"},
	ESystemAdminRequired:   {403, "System administrator rights required"},
	EClientAccountRequired: {403, "Please, use client account to manage data on this route"},
	EDeviceCookieLockout:   {403, "Account locked out. Please, try again later"},
	EDeviceCookieInvalid:   {403, "Provided device cookie is invalid"},

	ECSRFTokenMissing:      {403, "CSRF token is missing. Ensure it's present in both cookies and request headers"},
	ECSRFTokenMismatch:     {403, "Provided CSRF tokens in cookies and request headers do not match"},
	ECSRFTokenInvalid:      {403, "Provided CSRF token is invalid or expired"},
	ECSRFTokenUserMismatch: {403, "Provided CSRF token does not match the current user"},

	EUserNotFound:        {404, "Requested user does not exist"},
	EUserExists:          {409, "User with this name already exists"},
	EUserDeleted:         {409, "Unable to perform operation, because user is deleted"},
	EUserNotDeleted:      {409, "Can't restore user that not deleted"},
	EUserBeingErased:     {409, "Unable to perform operation, because user is being erased"},
	EAccountNotConfirmed: {401, "Account is not activated. Please, check your email/telephone for activation link"},
	EAccountDisabled:     {401, "Account is disabled. Please, contact support service to get more information"},
	EWrongPassword:       {401, "Wrong password"},

	EProjectNotFound:          {404, "Requested project does not exist"},
	EProjectExists:            {409, "Project with this name already exists"},
	EProjectDeleted:           {409, "Unable to perform operation, because project is deleted"},
	EProjectNotDeleted:        {409, "Can't restore project that not deleted"},
	EProjectBeingErased:       {409, "Unable to perform operation, because project is being erased"},
	EPoolNotFound:             {404, "Resource pool not found"},
	EPoolExists:               {409, "Resource pool already exists"},
	EPoolLocked:               {409, "Resource pool is being changed now. Please, try again later"},
	EDefaultProjectImmutable:  {409, "Default project can not be modified or deleted"},
	EProjectDeleteError:       {409, "Unable to delete this project"},
	ECPURAMMultiplicityBroken: {422, "The amount of RAM should be a multiple of the number of processor cores"},
	ENodeCPUInvalid:           {422, "Invalid number of cpu cores to allocate for node"},
	ENodeRAMInvalid:           {422, "Invalid amount of memory to allocate for node"},
	EInvalidMemPerCore:        {422, "Invalid ratio of provided cpu and ram"},

	EInvalidNodeGroup: {422, "Invalid node group for this platform type"},

	EFuzzerNotFound:         {404, "Requested fuzzer does not exist"},
	EFuzzerExists:           {409, "Fuzzer with this name already exists"},
	EFuzzerDeleted:          {409, "Unable to perform operation, because fuzzer is deleted"},
	EFuzzerNotDeleted:       {409, "Can't restore fuzzer that not deleted"},
	EFuzzerBeingErased:      {409, "Unable to perform operation, because fuzzer is being erased"},
	EFuzzerLangMismatch:     {422, "Selected docker image has a programming language different from specified in request"},
	EFuzzerEngineMismatch:   {422, "Selected docker image has a fuzzer engine different from specified in request"},
	EFuzzerNotInTrashbin:    {409, "Fuzzer not in trashbin"},
	EActiveRevisionNotFound: {404, "Active revision not selected"},

	ERevisionNotFound:         {404, "Requested fuzzer revision does not exist"},
	ERevisionExists:           {409, "Fuzzer revision with this name already exists"},
	ERevisionDeleted:          {409, "Unable to perform operation, because revision is deleted"},
	ERevisionNotDeleted:       {409, "Can't restore revision that not deleted"},
	ERevisionBeingErased:      {409, "Unable to perform operation, because revision is being erased"},
	ERevisionCanNotBeChanged:  {409, "Specified type of data can't be changed in current state"},
	ERevisionIsNotRunning:     {409, "Revision is not running"},
	ERevisionCanOnlyRestart:   {409, "Revision in this state can be only restarted"},
	ERevisionAlreadyRunning:   {409, "Revision already running"},
	EMustUploadBinaries:       {409, "You must upload at least binaries to run revision"},
	ENoPoolToUse:              {409, "Current project doesn't have a resource pool. Please, create it to continue"},
	ECPUUsageInvalid:          {422, "Invalid CPU usage specified for the revision. Check it does not exceed pool limits"},
	ERAMUsageInvalid:          {422, "Invalid RAM usage specified for the revision. Check it does not exceed pool limits"},
	ETmpfsSizeInvalid:         {422, "Invalid TmpFS size specified for the revision. Check it does not exceed pool limits"},
	ETotalRAMUsageInvalid:     {422, "Sum of TmpFS size and RAM usage exceeds pool limits"},
	ESourceRevisionNotFound:   {404, "Source revision not found"},
	ETargetRevisionNotFound:   {404, "Destination revision not found"},
	ECorpusOverwriteForbidden: {409, "Corpus files overwrite is forbidden, if target revision has had any runs"},
	ENoCorpusFound:            {404, "Corpus files were not found"},
	ECopySourceTargetSame:     {409, "Source and target revision IDs are the same"},

	EImageNotFound:          {404, "Requested image does not exist"},
	EImageExists:            {409, "Image with this name already exists"},
	EImageNotReady:          {422, "Specified image can't be used to run fuzzer"},
	EEngineLangIncompatible: {422, "This fuzzer engine is not compatible with programming language specified"},

	EEngineNotFound:           {404, "Requested engine does not exist"},
	EEngineExists:             {409, "Engine with this id already exists"},
	EEngineLangNotEnabled:     {422, "Specified lang is not enabled for this engine"},
	EEngineLangAlreadyEnabled: {422, "Specified lang already enabled for this engine"},
	EEnginesInvalid:           {422, "Provided invalid engines: %s"},
	EEngineInUseBy:            {409, "Engine is in use by: %s"},

	ELangNotFound: {404, "Requested language does not exist"},
	ELangExists:   {409, "Language with this id already exists"},
	ELangsInvalid: {422, "Provided invalid langs: %s"},
	ELangInUseBy:  {409, "Lang is in use by: %s"},

	EIntegrationNotFound:     {404, "Requested integration does not exist"},
	EIntegrationExists:       {409, "Integration with this name already exists"},
	EIntegrationTypeMismatch: {422, "Integration type in request body does not match the actual one"},

	EIntegrationTypeNotFound: {404, "Requested integration type does not exists"},
	EIntegrationTypeExists:   {409, "Integration with this type already exists"},
	EIntegrationTypeInUseBy:  {409, "Integration type is in use by: %s"},

	ECrashNotFound: {404, "Requested crash does not exist"},

	EStatisticsNotFound: {404, "Requested statistics record does not exist"},

	EUploadFailure:   {500, "Failed to upload file. Re-upload required"},
	EFileNotFound:    {404, "Requested file does not exist"},
	EFileTooLarge:    {413, "Provided file is too large. Please, fit into upload limit"},
	EFileNotArchive:  {422, "Provided file is not recognized as archive. Please, ensure you're uploading '.tar.gz' file"},
	EJSONFileInvalid: {422, "Provided file is not recognized as json. Please, ensure you're uploading valid '.json' file"},
}
