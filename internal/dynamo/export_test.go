package dynamo

var Preallocate = preallocate
